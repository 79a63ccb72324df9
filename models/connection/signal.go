package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Opponent selection on the start screen
	CodePlayAI
	CodePlayFriend

	CodeChooseSize
	CodeShoot

	// Hand-off between two humans sharing one screen
	CodeEndTurn
	CodeStartTurn

	CodePlayAgain

	// Sent by the server after every state change, and by the
	// client to ask for the current state
	CodeState

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	CodeInvalidCoordinate
	CodeInvalidPayload
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
