package relay

import "encoding/json"

// Event names carried in the "event" field of every frame.
const (
	EventJoin      = "join"
	EventLeave     = "leave"
	EventBroadcast = "broadcast"
	EventJoined    = "joined"
	EventLeft      = "left"
	EventReceived  = "received"
	EventError     = "error"
)

const maxRoomLength = 128

// InboundFrame is a client request. Payload is opaque and relayed verbatim.
type InboundFrame struct {
	Event   string          `json:"event"`
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// OutboundFrame is sent to clients.
type OutboundFrame struct {
	Event   string          `json:"event"`
	Room    string          `json:"room,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Message string          `json:"message,omitempty"`
}

func encodeFrame(frame OutboundFrame) []byte {
	data, err := json.Marshal(frame)
	if err != nil {
		// Payload is validated JSON on the way in; this only fails on programmer error.
		data, _ = json.Marshal(OutboundFrame{Event: EventError, Message: "unencodable frame"})
	}
	return data
}
