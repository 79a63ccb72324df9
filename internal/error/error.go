package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrShotFailed = "shot operation failed"
)

var (
	ErrInvalidCoordinate   = errors.New("coordinate is out of board bound")
	ErrAlreadyTargeted     = errors.New("position already targeted")
	ErrTurnViolation       = errors.New("action not allowed in current phase or turn")
	ErrPlacementExhausted  = errors.New("ship placement attempts exhausted")
	ErrAgentMoveExhausted  = errors.New("agent could not find an untargeted position")
	ErrInvalidBoardSize    = errors.New("invalid board size")
	ErrInvalidOpponentMode = errors.New("invalid opponent mode")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidPayload      = errors.New("invalid payload")
)

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrInvalidCoordinate, x, y)
}

func ErrPositionAlreadyTargeted(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrAlreadyTargeted, x, y)
}

func ErrNotSideTurn(side string, phase string) error {
	return fmt.Errorf("%w\tside: %s\tphase: %s", ErrTurnViolation, side, phase)
}

func ErrPhaseMismatch(expected, got string) error {
	return fmt.Errorf("%w\texpected phase: %s\tgot: %s", ErrTurnViolation, expected, got)
}

func ErrShipNotPlaced(shipType string, attempts int) error {
	return fmt.Errorf("%w\tship: %s\tattempts: %d", ErrPlacementExhausted, shipType, attempts)
}

func ErrAgentNoMove(attempts int) error {
	return fmt.Errorf("%w\tattempts: %d", ErrAgentMoveExhausted, attempts)
}

func ErrBoardSizeInvalid(size interface{}) error {
	return fmt.Errorf("%w: %v", ErrInvalidBoardSize, size)
}

func ErrOpponentModeInvalid(mode interface{}) error {
	return fmt.Errorf("%w: %v", ErrInvalidOpponentMode, mode)
}

func ErrShipNotExist(shipId string) error {
	return fmt.Errorf("ship with this id does not exist in fleet, id: %s", shipId)
}

func ErrSessionNotFoundWithId(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil, id: %s", sessionId)
}

func ErrNilPayload() error {
	return fmt.Errorf("%w: the payload is nil or could not be decoded", ErrInvalidPayload)
}

func ErrPayloadNotDecoded(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
}

func ErrInvalidShooter(side string) error {
	return fmt.Errorf("%w: side cannot shoot from a client: %s", ErrInvalidPayload, side)
}

func ErrKeyNotExists(key string) error {
	return fmt.Errorf("%w: key does not exist: %s", ErrInvalidPayload, key)
}
