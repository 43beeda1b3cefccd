package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRedisBus_RecoversFromStartupOutage(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	defer server.Close()
	addr := server.Addr()
	server.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer client.Close()

	hub := NewHub(4, nil)
	sender, member := hub.Register(), hub.Register()
	hub.Join(sender, "r")
	hub.Join(member, "r")

	bus := NewRedisBus(client, "relay", hub, nil)
	bus.retryMin, bus.retryMax = 10*time.Millisecond, 50*time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- bus.Listen(ctx) }()

	env := Envelope{ConnID: sender.ID(), Room: "r", Payload: json.RawMessage(`"hello"`)}
	if err := bus.Publish(ctx, env); err == nil {
		t.Fatal("expected publish to fail while redis is down")
	}

	select {
	case err := <-done:
		t.Fatalf("listener gave up during the outage: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	if err := server.Restart(); err != nil {
		t.Fatalf("restart redis: %v", err)
	}
	waitUntil(t, 5*time.Second, bus.Subscribed)

	if err := bus.Publish(ctx, env); err != nil {
		t.Fatalf("publish after recovery: %v", err)
	}

	var frames []OutboundFrame
	waitUntil(t, 5*time.Second, func() bool {
		frames = append(frames, drain(member)...)
		return len(frames) > 0
	})
	if string(frames[0].Payload) != `"hello"` {
		t.Errorf("unexpected payload %s", frames[0].Payload)
	}
	if got := drain(sender); len(got) != 0 {
		t.Errorf("sender must be excluded, got %v", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("listen returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}

func TestRedisBus_PublishBeforeSubscribeAsksForLocalDelivery(t *testing.T) {
	server := miniredis.NewMiniRedis()
	if err := server.Start(); err != nil {
		t.Fatalf("start redis: %v", err)
	}
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	bus := NewRedisBus(client, "relay", NewHub(4, nil), nil)
	err := bus.Publish(context.Background(), Envelope{Room: "r", Payload: json.RawMessage(`1`)})
	if !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("expected ErrNotSubscribed, got %v", err)
	}
}
