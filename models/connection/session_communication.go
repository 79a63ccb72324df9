package connection

// SessionMessage is a write queued for a session by something other
// than its own read loop, e.g. the agent answering after a delay.
type SessionMessage struct {
	PayloadType uint8
	ReceiverID  string
	Payload     interface{}
}

func NewSessionMessageJSON(receiverId string, p interface{}) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeJSON,
		ReceiverID:  receiverId,
		Payload:     p,
	}
}

func NewSessionMessageBytes(receiverId string, p []byte) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeBytes,
		ReceiverID:  receiverId,
		Payload:     p,
	}
}
