package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

type RequestHandler interface {
	HandleChooseSize(controller *mb.Controller) error
	HandleShoot(controller *mb.Controller) (mb.ShotReport, error)
}

// Every incoming request that carries a payload is decoded
// and applied to the session controller by a Request.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func (r Request) decode(v interface{}) error {
	if len(r.payload) == 0 {
		return cerr.ErrNilPayload()
	}
	if err := json.Unmarshal(r.payload, v); err != nil {
		return cerr.ErrPayloadNotDecoded(err)
	}
	return nil
}

func (r Request) HandleChooseSize(controller *mb.Controller) error {
	var req mc.Message[mc.ReqChooseSize]
	if err := r.decode(&req); err != nil {
		return err
	}

	size, err := mb.ParseBoardSize(req.Payload.Size)
	if err != nil {
		return err
	}
	return controller.ChooseSize(size)
}

// The agent only ever shoots from inside the controller, so a
// client may only shoot as one of the humans.
func (r Request) HandleShoot(controller *mb.Controller) (mb.ShotReport, error) {
	var req mc.Message[mc.ReqShoot]
	if err := r.decode(&req); err != nil {
		return mb.ShotReport{}, err
	}

	shooter := mb.Side(req.Payload.Side)
	if shooter != mb.SidePlayer1 && shooter != mb.SidePlayer2 {
		return mb.ShotReport{}, cerr.ErrInvalidShooter(req.Payload.Side)
	}

	return controller.Shoot(shooter, mb.NewCoordinates(req.Payload.X, req.Payload.Y))
}
