package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-engine/db/sqlc"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// a full large board state is well below this
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	loopbackIpNet = net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}
)

// RequestProcessor serves one renderer per websocket connection. Each
// connection gets its own session and game controller.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	db             *sqlc.DbManager
	agentDelay     time.Duration
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	q sqlc.Querier,
	agentDelay time.Duration,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		agentDelay:     agentDelay,
	}
	if q != nil {
		rp.db = sqlc.NewDbManager(q)
	}

	rp.ipnet = findServerIpNet()
	return rp
}

// The analytics rows are keyed by the first non-loopback IPv4 of
// the host. Loopback is used on hosts that have none.
func findServerIpNet() net.IPNet {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("failed to list interfaces; using loopback", "err", err)
		return loopbackIpNet
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			log.Warn("failed to read interface addrs", "iface", iface.Name, "err", err)
			continue
		}

		for _, addr := range addrs {
			var ipnet net.IPNet

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = *v

			case *net.IPAddr:
				ipnet = net.IPNet{IP: v.IP, Mask: net.CIDRMask(32, 32)}
			}

			if ipnet.IP != nil && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return ipnet
			}
		}
	}

	log.Warn("no non-loopback ipv4 found; using loopback")
	return loopbackIpNet
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "err", err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Info("a new connection established", "remote", conn.RemoteAddr().String())
		controller := mb.NewController(mb.WithAgentDelay(rp.agentDelay))
		session := rp.sessionManager.GenerateNewSession(conn, controller)
		rp.processSessionRequests(session)

	default:
		rp.reconnect(sessionIdQuery, conn)
	}
}

// reconnect hands a new connection to a session whose renderer went
// away abnormally. The session read loop carries on with it.
func (rp RequestProcessor) reconnect(sessionId string, conn *websocket.Conn) {
	session, err := rp.sessionManager.FindSession(sessionId)
	if err != nil {
		log.Warn("reconnection to unknown session", "session", sessionId, "err", err)
		msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
		msg.AddError(err.Error(), "session does not exist")
		_ = conn.WriteJSON(msg)
		_ = conn.Close()
		return
	}

	rp.sessionManager.ReconnectSession(session, conn)
	if err := rp.writeState(session); err != nil {
		log.Warn("failed to write state after reconnection", "session", sessionId, "err", err)
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionId  = session.Id()
		controller = session.Controller()
	)

	// Every state change, the deferred agent move included, is
	// pushed to the renderer.
	controller.OnUpdate(func(snap mb.Snapshot) {
		if _, err := rp.sessionManager.FindSession(sessionId); err != nil {
			return
		}

		if snap.Phase == mb.PhaseWinLoss {
			rp.recordAnalytics("games finished", rp.analyticsIncrementGamesFinished)
		}

		msg := mc.NewMessage[mc.RespState](mc.CodeState)
		msg.AddPayload(mc.NewRespState(snap))
		rp.sessionManager.Communicate(mc.NewSessionMessageJSON(sessionId, msg))
	})

	defer func() {
		rp.sessionManager.TerminateSession(sessionId)
		controller.Reset()
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodePlayAI:
			err = controller.PlayAI()

		case mc.CodePlayFriend:
			err = controller.PlayFriend()

		case mc.CodeChooseSize:
			err = NewRequest(payload).HandleChooseSize(controller)
			if err == nil {
				rp.recordAnalytics("games created", rp.analyticsIncrementGamesCreated)
			}

		case mc.CodeShoot:
			_, err = NewRequest(payload).HandleShoot(controller)

		case mc.CodeEndTurn:
			err = controller.EndTurn()

		case mc.CodeStartTurn:
			err = controller.StartTurn()

		case mc.CodePlayAgain:
			err = controller.PlayAgain()
			if err == nil {
				rp.recordAnalytics("play again called", rp.analyticsIncrementPlayAgain)
			}

		case mc.CodeState:
			if err := rp.writeState(session); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}

		if err != nil {
			if err := rp.respondToErr(session, code, err); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) writeState(session *mc.Session) error {
	msg := mc.NewMessage[mc.RespState](mc.CodeState)
	msg.AddPayload(mc.NewRespState(session.Controller().Snapshot()))
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}

// respondToErr tells the renderer why an event was refused. Events
// that are merely out of turn or phase are not errors to the player;
// the unchanged state is sent back instead.
func (rp RequestProcessor) respondToErr(session *mc.Session, code uint8, err error) error {
	switch {
	case errors.Is(err, cerr.ErrInvalidCoordinate):
		msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidCoordinate)
		msg.AddError(err.Error(), cerr.ConstErrShotFailed)
		return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)

	case errors.Is(err, cerr.ErrInvalidPayload), errors.Is(err, cerr.ErrInvalidBoardSize):
		msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidPayload)
		msg.AddError(err.Error(), "invalid payload for the incoming code")
		return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)

	default:
		log.Debug("event ignored", "session", session.Id(), "code", code, "err", err)
		return rp.writeState(session)
	}
}

func (rp RequestProcessor) analyticsIncrementGamesCreated(ctx context.Context, ip pqtype.Inet) error {
	return rp.db.Analytics.IncrementGamesCreatedCount(ctx, ip)
}

func (rp RequestProcessor) analyticsIncrementGamesFinished(ctx context.Context, ip pqtype.Inet) error {
	return rp.db.Analytics.IncrementGamesFinishedCount(ctx, ip)
}

func (rp RequestProcessor) analyticsIncrementPlayAgain(ctx context.Context, ip pqtype.Inet) error {
	return rp.db.Analytics.IncrementPlayAgainCalledCount(ctx, ip)
}

// Analytics failures never end a game; they are only logged.
func (rp RequestProcessor) recordAnalytics(name string, increment func(context.Context, pqtype.Inet) error) {
	if rp.db == nil {
		return
	}

	ctx, cancel := rp.db.QueryContext()
	defer cancel()

	if err := increment(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		log.Error("failed to record analytics", "counter", name, "err", err)
	}
}
