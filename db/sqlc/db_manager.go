package sqlc

import (
	"context"
	"time"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups the managers over the generated queries. The
// server only ever holds one when a database is configured.
type DbManager struct {
	Analytics  *AnalyticsManager
	ctxTimeout time.Duration
}

func NewDbManager(queries Querier) *DbManager {
	return &DbManager{
		Analytics:  NewAnalyticsManager(queries),
		ctxTimeout: QuerierCtxTimeout,
	}
}

// QueryContext bounds a single query so a slow database never
// holds up a game.
func (dm *DbManager) QueryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dm.ctxTimeout)
}
