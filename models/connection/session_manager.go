package connection

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

const (
	defaultCleanupInterval = time.Minute * 20
	// Assumed capacity of the slice of stale sessions
	assumedClosedConns = 10
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn, controller *mb.Controller) *Session
	CleanupPeriodically()
	ManageCommunication()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(session *Session, conn *websocket.Conn)

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Communicate(msg SessionMessage)
	HandleAbnormalClosureSession(session *Session) error
	FetchCodeFromMsg(payload []byte) (uint8, error)
}

type BattleshipSessionManager struct {
	cleanupInterval   time.Duration
	gracePeriod       time.Duration
	sessions          map[string]*Session
	communicationChan chan SessionMessage
	mu                sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

func WithCleanupInterval(interval time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = interval
	}
}

func WithGracePeriod(period time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = period
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:          make(map[string]*Session, initMapSize),
		communicationChan: make(chan SessionMessage),
		cleanupInterval:   defaultCleanupInterval,
		gracePeriod:       defaultGracePeriod,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn, controller *mb.Controller) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn, controller)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFoundWithId(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
	log.Info("session terminated", "session", sessionId)
}

func (bsm *BattleshipSessionManager) ReconnectSession(session *Session, conn *websocket.Conn) {
	session.reconnectionAfterAbnormalClosure(conn)
	log.Info("session reconnected", "session", session.id, "remote", conn.RemoteAddr().String())
}

// Communicate queues msg for its receiver. The write happens on the
// ManageCommunication goroutine.
func (bsm *BattleshipSessionManager) Communicate(msg SessionMessage) {
	bsm.communicationChan <- msg
}

// ManageCommunication writes the queued session messages in the
// order they were sent. It never returns.
func (bsm *BattleshipSessionManager) ManageCommunication() {
	for msg := range bsm.communicationChan {
		receiverSession, err := bsm.FindSession(msg.ReceiverID)
		if err != nil {
			// The receiver loop has already ended
			log.Debug("dropping session message", "err", err)
			continue
		}

		if err := bsm.WriteToSessionConn(receiverSession, msg.Payload, msg.PayloadType); err != nil {
			log.Warn("failed to deliver session message", "session", msg.ReceiverID, "err", err)
		}
	}
}

// To ensure that there is no dangling connections,
// server session manager marks the connections with a
// lifetime of more than the cleanup interval as stale
// and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically() {
	for {
		time.Sleep(bsm.cleanupInterval)
		bsm.cleanup()
	}
}

func (bsm *BattleshipSessionManager) cleanup() {
	bsm.mu.Lock()
	stale := make([]*Session, 0, assumedClosedConns)
	for ID, session := range bsm.sessions {
		if time.Since(session.createdAt) > bsm.cleanupInterval {
			stale = append(stale, session)
			delete(bsm.sessions, ID)
		}
	}
	bsm.mu.Unlock()

	// Reset fires the update callbacks, which look sessions up again
	for _, session := range stale {
		session.controller.Reset()
		log.Info("removed stale session", "session", session.id)
	}
}

// This function takes care of abnormal closures of the
// renderer connection, e.g. backgrounding on mobile.
// The game is kept until the grace period is over.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	reconnected := s.reconnectionSignal()

	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Info("grace period is over", "session", s.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-reconnected:
		log.Info("renderer reconnected", "session", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	for {
		err := session.writeToConnWithRetry(msg, msgType)
		if err == nil {
			return nil
		}

		if ConnErrCode(err) != ConnLoopAbnormalClosureRetry {
			return err
		}

		// Writing again on the new connection
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
	}
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}
			retries = 0

		default:
			return -1, []byte{}, err
		}
	}
}

func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}

	if err := json.Unmarshal(payload, &signal); err != nil {
		return CodeSignalAbsent, err
	}
	if signal.Code == nil {
		return CodeSignalAbsent, cerr.ErrKeyNotExists("code")
	}

	return *signal.Code, nil
}
