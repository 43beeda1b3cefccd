package relay

import (
	"context"
	"encoding/json"
)

// Envelope is a broadcast travelling between relay instances. ConnID identifies the sender,
// which never receives its own message.
type Envelope struct {
	ConnID  string          `json:"conn_id"`
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

// Bus fans broadcasts out to every hub sharing the rooms.
type Bus interface {
	Publish(ctx context.Context, env Envelope) error
}

// LocalBus delivers broadcasts to a single in-process hub.
type LocalBus struct {
	hub *Hub
}

// NewLocalBus builds a bus for single-instance deployments.
func NewLocalBus(hub *Hub) *LocalBus {
	return &LocalBus{hub: hub}
}

// Publish delivers immediately.
func (b *LocalBus) Publish(_ context.Context, env Envelope) error {
	b.hub.Deliver(env.Room, env.ConnID, env.Payload)
	return nil
}
