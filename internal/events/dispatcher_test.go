package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_PublishReachesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var calls []string
	d.Subscribe(EventPostLiked, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.ResourceID)
		return errors.New("ignored")
	})
	d.Subscribe(EventPostLiked, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.ResourceID)
		return nil
	})
	d.Subscribe(EventPostCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPostLiked, ResourceID: "p1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(calls) != 2 || calls[0] != "first:p1" || calls[1] != "second:p1" {
		t.Errorf("unexpected calls %v", calls)
	}
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	if err := d.Publish(context.Background(), Event{Type: EventTransactionCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func TestDispatcher_SubscribeAllRunsAfterTypedHandlers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var calls []string
	d.SubscribeAll(func(_ context.Context, e Event) error {
		calls = append(calls, "all:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventStoreCreated, func(context.Context, Event) error {
		calls = append(calls, "typed")
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventStoreCreated})
	_ = d.Publish(context.Background(), Event{Type: EventPostDeleted})

	want := []string{"typed", "all:store_created", "all:post_deleted"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], calls[i])
		}
	}
}
