package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/spec-kit/marketplace-service/internal/observability"
)

const (
	maxFrameBytes = 64 << 10
	writeWait     = 10 * time.Second
)

// Server accepts websocket clients and relays room broadcasts. It carries no identity:
// any client may join any room it can name.
type Server struct {
	hub     *Hub
	bus     Bus
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewServer builds a relay server.
func NewServer(hub *Hub, bus Bus, logger *zap.Logger, metrics *observability.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{hub: hub, bus: bus, logger: logger, metrics: metrics}
}

// Handler exposes GET /ws and GET /up.
func (s *Server) Handler() http.Handler {
	ws := websocket.Server{
		// Browsers on the storefront origin and native clients without an Origin header are both accepted.
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler:   s.serveConn,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ws.ServeHTTP(w, r)
	})
	return mux
}

func (s *Server) serveConn(ws *websocket.Conn) {
	ws.MaxPayloadBytes = maxFrameBytes
	conn := s.hub.Register()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeLoop(ws, conn)
	}()

	s.readLoop(ws, conn)
	s.hub.Remove(conn)
	<-done
}

func (s *Server) writeLoop(ws *websocket.Conn, conn *Conn) {
	for frame := range conn.send {
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := websocket.Message.Send(ws, string(frame)); err != nil {
			s.logger.Debug("relay write failed", zap.String("conn_id", conn.ID()), zap.Error(err))
			// Closing unblocks readLoop; drain until the hub closes send.
			_ = ws.Close()
			for range conn.send {
			}
			return
		}
	}
}

func (s *Server) readLoop(ws *websocket.Conn, conn *Conn) {
	ctx := context.Background()
	if req := ws.Request(); req != nil {
		ctx = req.Context()
	}

	for {
		var raw []byte
		if err := websocket.Message.Receive(ws, &raw); err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Debug("relay read failed", zap.String("conn_id", conn.ID()), zap.Error(err))
			}
			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.replyError(conn, "invalid frame")
			continue
		}
		s.dispatch(ctx, conn, frame)
	}
}

func (s *Server) dispatch(ctx context.Context, conn *Conn, frame InboundFrame) {
	room := strings.TrimSpace(frame.Room)
	if room == "" || len(room) > maxRoomLength {
		s.replyError(conn, "room is required")
		return
	}

	switch frame.Event {
	case EventJoin:
		s.hub.Join(conn, room)
		s.hub.Reply(conn, OutboundFrame{Event: EventJoined, Room: room})
	case EventLeave:
		s.hub.Leave(conn, room)
		s.hub.Reply(conn, OutboundFrame{Event: EventLeft, Room: room})
	case EventBroadcast:
		s.metrics.RelayBroadcast()
		env := Envelope{ConnID: conn.ID(), Room: room, Payload: frame.Payload}
		if err := s.bus.Publish(ctx, env); err != nil {
			if !errors.Is(err, ErrNotSubscribed) {
				s.logger.Warn("relay publish failed; delivering locally", zap.String("room", room), zap.Error(err))
			}
			s.hub.Deliver(room, conn.ID(), frame.Payload)
		}
	default:
		s.replyError(conn, "unsupported event")
	}
}

func (s *Server) replyError(conn *Conn, message string) {
	s.hub.Reply(conn, OutboundFrame{Event: EventError, Message: message})
}
