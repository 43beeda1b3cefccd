package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func newRelay(t *testing.T) *httptest.Server {
	t.Helper()
	hub := NewHub(8, nil)
	srv := httptest.NewServer(NewServer(hub, NewLocalBus(hub), nil, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	if err := websocket.Message.Send(conn, frame); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func read(t *testing.T, conn *websocket.Conn) OutboundFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame OutboundFrame
	if err := websocket.JSON.Receive(conn, &frame); err != nil {
		t.Fatalf("receive: %v", err)
	}
	return frame
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	var frame OutboundFrame
	if err := websocket.JSON.Receive(conn, &frame); err == nil {
		t.Fatalf("expected no frame, got %+v", frame)
	}
}

func join(t *testing.T, conn *websocket.Conn, room string) {
	t.Helper()
	send(t, conn, `{"event":"join","room":"`+room+`"}`)
	if ack := read(t, conn); ack.Event != EventJoined || ack.Room != room {
		t.Fatalf("expected join ack, got %+v", ack)
	}
}

func TestServer_BroadcastReachesOtherMembers(t *testing.T) {
	srv := newRelay(t)
	alice, bob, carol := dial(t, srv), dial(t, srv), dial(t, srv)
	join(t, alice, "conv-1")
	join(t, bob, "conv-1")
	join(t, carol, "conv-2")

	send(t, alice, `{"event":"broadcast","room":"conv-1","payload":{"from":"alice","text":"hello","meta":[1,2]}}`)

	got := read(t, bob)
	if got.Event != EventReceived || got.Room != "conv-1" {
		t.Fatalf("unexpected frame %+v", got)
	}
	var payload map[string]any
	if err := json.Unmarshal(got.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload["text"] != "hello" || payload["from"] != "alice" {
		t.Errorf("payload not relayed verbatim: %s", got.Payload)
	}

	expectSilence(t, alice)
	expectSilence(t, carol)
}

func TestServer_LeaveStopsDelivery(t *testing.T) {
	srv := newRelay(t)
	alice, bob := dial(t, srv), dial(t, srv)
	join(t, bob, "conv-1")

	send(t, bob, `{"event":"leave","room":"conv-1"}`)
	if ack := read(t, bob); ack.Event != EventLeft {
		t.Fatalf("expected leave ack, got %+v", ack)
	}

	send(t, alice, `{"event":"broadcast","room":"conv-1","payload":"ping"}`)
	expectSilence(t, bob)
}

func TestServer_InvalidFrames(t *testing.T) {
	srv := newRelay(t)
	conn := dial(t, srv)

	for _, frame := range []string{
		`not json`,
		`{"event":"join"}`,
		`{"event":"shout","room":"r"}`,
	} {
		send(t, conn, frame)
		if got := read(t, conn); got.Event != EventError || got.Message == "" {
			t.Errorf("%s: expected error frame, got %+v", frame, got)
		}
	}

	join(t, conn, "still-alive")
}

func TestServer_RejectsNonGet(t *testing.T) {
	srv := newRelay(t)
	resp, err := http.Post(srv.URL+"/ws", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}
