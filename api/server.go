package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-engine/db/sqlc"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	RouteBattleship = "GET /battleship"
)

var defaultPort = 8000

type Server struct {
	port       int
	stage      string
	querier    sqlc.Querier
	agentDelay time.Duration

	SessionManager *mc.BattleshipSessionManager
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) (*Server, error) {
	server := Server{
		port:       defaultPort,
		stage:      StageDev,
		agentDelay: mb.DefaultAgentDelay,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	server.SessionManager = mc.NewBattleshipSessionManager()
	return &server, nil
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// A nil querier disables analytics.
func WithQuerier(q sqlc.Querier) Option {
	return func(s *Server) error {
		s.querier = q
		return nil
	}
}

func WithAgentDelay(delay time.Duration) Option {
	return func(s *Server) error {
		if delay < 0 {
			return fmt.Errorf("agent delay cannot be negative: %s", delay)
		}
		s.agentDelay = delay
		return nil
	}
}

func (s *Server) Port() int {
	return s.port
}

func (s *Server) Stage() string {
	return s.stage
}

func (s *Server) Handler() http.Handler {
	rp := NewRequestProcessor(s.SessionManager, s.querier, s.agentDelay)

	mux := http.NewServeMux()
	mux.Handle(RouteBattleship, rp)
	return mux
}

// ListenAndServe starts the session manager loops and blocks
// serving http.
func (s *Server) ListenAndServe() error {
	go s.SessionManager.ManageCommunication()
	go s.SessionManager.CleanupPeriodically()

	addr := fmt.Sprintf("0.0.0.0:%d", s.port)
	log.Info("listening", "addr", addr, "stage", s.stage, "analytics", s.querier != nil)
	return http.ListenAndServe(addr, s.Handler())
}
