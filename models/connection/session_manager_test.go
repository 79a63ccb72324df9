package connection

import (
	"errors"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

func TestFindSession(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session := bsm.GenerateNewSession(nil, mb.NewController())

	tests := []struct {
		name        string
		sessionId   string
		expectedErr error
	}{
		{name: "existing session", sessionId: session.Id()},
		{name: "unknown session", sessionId: "not-a-session", expectedErr: cerr.ErrSessionNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			found, err := bsm.FindSession(test.sessionId)
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			if found != session {
				t.Fatal("found session is not the generated one")
			}
		})
	}
}

func TestTerminateSession(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session := bsm.GenerateNewSession(nil, mb.NewController())

	bsm.TerminateSession(session.Id())
	if _, err := bsm.FindSession(session.Id()); !errors.Is(err, cerr.ErrSessionNotFound) {
		t.Fatalf("expected session to be terminated, got err: %v", err)
	}
}

func TestCleanupStaleSessions(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Minute))

	stale := bsm.GenerateNewSession(nil, mb.NewController())
	stale.createdAt = time.Now().Add(-time.Hour)
	fresh := bsm.GenerateNewSession(nil, mb.NewController())

	bsm.cleanup()

	if _, err := bsm.FindSession(stale.Id()); err == nil {
		t.Fatal("stale session must be removed")
	}
	if _, err := bsm.FindSession(fresh.Id()); err != nil {
		t.Fatalf("fresh session must be kept: %v", err)
	}
}

func TestCleanupResetsStaleControllers(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Millisecond))

	controller := mb.NewController()
	stale := bsm.GenerateNewSession(nil, controller)
	stale.createdAt = time.Now().Add(-time.Hour)

	// Same lookup the request processor does before pushing a state
	lookups := make(chan error, 1)
	controller.OnUpdate(func(snap mb.Snapshot) {
		_, err := bsm.FindSession(stale.Id())
		lookups <- err
	})

	done := make(chan struct{})
	go func() {
		bsm.cleanup()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second * 2):
		t.Fatal("cleanup did not return")
	}

	select {
	case err := <-lookups:
		if !errors.Is(err, cerr.ErrSessionNotFound) {
			t.Fatalf("expected the stale session to be gone on reset, got: %v", err)
		}
	default:
		t.Fatal("stale controller was not reset")
	}

	if _, err := bsm.FindSession(stale.Id()); err == nil {
		t.Fatal("stale session must be removed")
	}
}

func TestHandleAbnormalClosureSession(t *testing.T) {
	t.Run("grace period over", func(t *testing.T) {
		bsm := NewBattleshipSessionManager(WithGracePeriod(time.Millisecond * 20))
		session := bsm.GenerateNewSession(nil, mb.NewController())

		err := bsm.HandleAbnormalClosureSession(session)
		if ConnErrCode(err) != ConnLoopBreak {
			t.Fatalf("expected loop break, got: %v", err)
		}
	})

	t.Run("reconnected within grace period", func(t *testing.T) {
		bsm := NewBattleshipSessionManager(WithGracePeriod(time.Second * 5))
		session := bsm.GenerateNewSession(nil, mb.NewController())

		go func() {
			time.Sleep(time.Millisecond * 20)
			session.reconnectionAfterAbnormalClosure(nil)
		}()

		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			t.Fatalf("expected reconnection, got: %v", err)
		}
	})
}

func TestFetchCodeFromMsg(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	tests := []struct {
		name         string
		payload      string
		expectedCode uint8
		expectErr    bool
	}{
		{name: "play ai", payload: `{"code": 2}`, expectedCode: CodePlayAI},
		{name: "shoot with payload", payload: `{"code": 5, "payload": {"side": "player1", "x": 1, "y": 2}}`, expectedCode: CodeShoot},
		{name: "zero code is kept", payload: `{"code": 0}`, expectedCode: CodeSessionID},
		{name: "missing code", payload: `{"payload": {}}`, expectedCode: CodeSignalAbsent, expectErr: true},
		{name: "not json", payload: `hello`, expectedCode: CodeSignalAbsent, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, err := bsm.FetchCodeFromMsg([]byte(test.payload))
			if (err != nil) != test.expectErr {
				t.Fatalf("expected err: %v\tgot: %v", test.expectErr, err)
			}
			if code != test.expectedCode {
				t.Fatalf("expected code: %d\tgot: %d", test.expectedCode, code)
			}
		})
	}
}

func TestConnErrCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected uint8
	}{
		{name: "abnormal closure", err: NewConnErr(ConnLoopAbnormalClosureRetry), expected: ConnLoopAbnormalClosureRetry},
		{name: "invalid msg type", err: NewConnErr(ConnInvalidMsgType).AddDesc("bad"), expected: ConnInvalidMsgType},
		{name: "foreign error", err: errors.New("boom"), expected: ConnLoopBreak},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if code := ConnErrCode(test.err); code != test.expected {
				t.Fatalf("expected code: %d\tgot: %d", test.expected, code)
			}
		})
	}
}
