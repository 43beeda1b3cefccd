package relay

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/observability"
)

const defaultSendBuffer = 16

// Conn is one client connection as seen by the hub. Outgoing frames are queued on a bounded
// channel drained by the connection's writer.
type Conn struct {
	id    string
	send  chan []byte
	rooms map[string]struct{}
}

// ID returns the connection id used to exclude the sender from its own broadcasts.
func (c *Conn) ID() string { return c.id }

// Hub tracks room membership. A connection may be in many rooms; empty rooms are dropped.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Conn]struct{}
	conns      map[*Conn]struct{}
	sendBuffer int
	metrics    *observability.Metrics
}

// NewHub builds a hub whose connections queue at most sendBuffer frames.
func NewHub(sendBuffer int, metrics *observability.Metrics) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		rooms:      make(map[string]map[*Conn]struct{}),
		conns:      make(map[*Conn]struct{}),
		sendBuffer: sendBuffer,
		metrics:    metrics,
	}
}

// Register adds a new connection that belongs to no room.
func (h *Hub) Register() *Conn {
	conn := &Conn{
		id:    uuid.NewString(),
		send:  make(chan []byte, h.sendBuffer),
		rooms: make(map[string]struct{}),
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.metrics.RelayConnected(1)
	return conn
}

// Join adds conn to room.
func (h *Hub) Join(conn *Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Conn]struct{})
		h.rooms[room] = members
	}
	members[conn] = struct{}{}
	conn.rooms[room] = struct{}{}
}

// Leave removes conn from room.
func (h *Hub) Leave(conn *Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(conn, room)
}

// Remove drops conn from every room and closes its queue. It is safe to call twice.
func (h *Hub) Remove(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; !ok {
		return
	}
	for room := range conn.rooms {
		h.leaveLocked(conn, room)
	}
	delete(h.conns, conn)
	close(conn.send)
	h.metrics.RelayConnected(-1)
}

func (h *Hub) leaveLocked(conn *Conn, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, conn)
	delete(conn.rooms, room)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Deliver queues payload to every member of room except the connection with excludeID.
// A recipient whose queue is full misses the frame.
func (h *Hub) Deliver(room, excludeID string, payload json.RawMessage) (delivered, dropped int) {
	frame := encodeFrame(OutboundFrame{Event: EventReceived, Room: room, Payload: payload})

	h.mu.RLock()
	for conn := range h.rooms[room] {
		if conn.id == excludeID {
			continue
		}
		select {
		case conn.send <- frame:
			delivered++
		default:
			dropped++
		}
	}
	h.mu.RUnlock()

	h.metrics.RelayDelivered(delivered, dropped)
	return delivered, dropped
}

// Reply queues a frame to a single connection, dropping it when the queue is full.
func (h *Hub) Reply(conn *Conn, frame OutboundFrame) bool {
	data := encodeFrame(frame)
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.conns[conn]; !ok {
		return false
	}
	select {
	case conn.send <- data:
		return true
	default:
		return false
	}
}

// Members returns the number of connections in room.
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Rooms returns the number of non-empty rooms.
func (h *Hub) Rooms() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
