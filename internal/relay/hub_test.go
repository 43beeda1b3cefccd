package relay

import (
	"encoding/json"
	"testing"
)

func drain(conn *Conn) []OutboundFrame {
	var frames []OutboundFrame
	for {
		select {
		case data := <-conn.send:
			var frame OutboundFrame
			_ = json.Unmarshal(data, &frame)
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestHub_DeliverExcludesSender(t *testing.T) {
	hub := NewHub(4, nil)
	a, b, c := hub.Register(), hub.Register(), hub.Register()
	hub.Join(a, "conv-1")
	hub.Join(b, "conv-1")
	hub.Join(c, "conv-2")

	delivered, dropped := hub.Deliver("conv-1", a.ID(), json.RawMessage(`{"text":"hi","n":1}`))
	if delivered != 1 || dropped != 0 {
		t.Fatalf("expected 1 delivered, got %d delivered %d dropped", delivered, dropped)
	}

	if frames := drain(a); len(frames) != 0 {
		t.Errorf("sender must not receive its own broadcast, got %v", frames)
	}
	if frames := drain(c); len(frames) != 0 {
		t.Errorf("other rooms must not receive, got %v", frames)
	}
	frames := drain(b)
	if len(frames) != 1 {
		t.Fatalf("expected one frame for b, got %d", len(frames))
	}
	if frames[0].Event != EventReceived || frames[0].Room != "conv-1" {
		t.Errorf("unexpected frame %+v", frames[0])
	}
	if string(frames[0].Payload) != `{"text":"hi","n":1}` {
		t.Errorf("payload must be relayed verbatim, got %s", frames[0].Payload)
	}
}

func TestHub_ConnectionInManyRooms(t *testing.T) {
	hub := NewHub(4, nil)
	a, b := hub.Register(), hub.Register()
	hub.Join(b, "r1")
	hub.Join(b, "r2")

	hub.Deliver("r1", a.ID(), json.RawMessage(`1`))
	hub.Deliver("r2", a.ID(), json.RawMessage(`2`))

	if frames := drain(b); len(frames) != 2 {
		t.Errorf("expected frames from both rooms, got %d", len(frames))
	}
}

func TestHub_LeaveAndRemoveDropEmptyRooms(t *testing.T) {
	hub := NewHub(4, nil)
	a, b := hub.Register(), hub.Register()
	hub.Join(a, "r1")
	hub.Join(a, "r2")
	hub.Join(b, "r2")

	hub.Leave(a, "r1")
	if hub.Members("r1") != 0 || hub.Rooms() != 1 {
		t.Fatalf("expected r1 dropped, got %d rooms", hub.Rooms())
	}

	hub.Remove(a)
	if hub.Members("r2") != 1 {
		t.Errorf("expected only b left in r2, got %d", hub.Members("r2"))
	}
	if _, open := <-a.send; open {
		t.Error("expected removed connection queue to be closed")
	}

	hub.Remove(a)
	hub.Join(a, "r3")
	if hub.Rooms() != 1 {
		t.Errorf("removed connection must not rejoin, got %d rooms", hub.Rooms())
	}

	hub.Remove(b)
	if hub.Rooms() != 0 {
		t.Errorf("expected no rooms, got %d", hub.Rooms())
	}
}

func TestHub_FullQueueDrops(t *testing.T) {
	hub := NewHub(1, nil)
	sender, slow := hub.Register(), hub.Register()
	hub.Join(slow, "r")

	if d, _ := hub.Deliver("r", sender.ID(), json.RawMessage(`1`)); d != 1 {
		t.Fatalf("expected first frame queued")
	}
	delivered, dropped := hub.Deliver("r", sender.ID(), json.RawMessage(`2`))
	if delivered != 0 || dropped != 1 {
		t.Errorf("expected drop on full queue, got %d delivered %d dropped", delivered, dropped)
	}
}

func TestHub_DeliverToUnknownRoom(t *testing.T) {
	hub := NewHub(0, nil)
	if d, dr := hub.Deliver("nobody", "", json.RawMessage(`{}`)); d != 0 || dr != 0 {
		t.Errorf("expected no-op, got %d/%d", d, dr)
	}
}

func TestRedisBus_HandleDeliversToHub(t *testing.T) {
	hub := NewHub(4, nil)
	sender, member := hub.Register(), hub.Register()
	hub.Join(sender, "r")
	hub.Join(member, "r")
	bus := NewRedisBus(nil, "relay", hub, nil)

	raw, _ := json.Marshal(Envelope{ConnID: sender.ID(), Room: "r", Payload: json.RawMessage(`"hello"`)})
	bus.handle(string(raw))
	bus.handle("not json")

	if frames := drain(sender); len(frames) != 0 {
		t.Errorf("sender must be excluded across instances, got %v", frames)
	}
	frames := drain(member)
	if len(frames) != 1 || string(frames[0].Payload) != `"hello"` {
		t.Errorf("unexpected frames %+v", frames)
	}
}
