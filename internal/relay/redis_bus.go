package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotSubscribed is returned by RedisBus.Publish while this instance has no live
// subscription. The envelope still reached Redis when possible, but local members will
// only see it if the caller delivers it to the hub itself.
var ErrNotSubscribed = errors.New("relay bus not subscribed")

const (
	defaultRetryMin = 500 * time.Millisecond
	defaultRetryMax = 30 * time.Second
)

// RedisBus shares rooms across relay instances over a Redis pub/sub channel. Every instance,
// including the publisher, delivers envelopes it receives from the channel to its local hub.
type RedisBus struct {
	client     *redis.Client
	channel    string
	hub        *Hub
	logger     *zap.Logger
	subscribed atomic.Bool

	retryMin time.Duration
	retryMax time.Duration
}

// NewRedisBus builds a bus publishing on channel.
func NewRedisBus(client *redis.Client, channel string, hub *Hub, logger *zap.Logger) *RedisBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBus{
		client:   client,
		channel:  channel,
		hub:      hub,
		logger:   logger,
		retryMin: defaultRetryMin,
		retryMax: defaultRetryMax,
	}
}

// Publish sends env to every subscribed instance.
func (b *RedisBus) Publish(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("publish envelope: %w", err)
	}
	if !b.subscribed.Load() {
		return ErrNotSubscribed
	}
	return nil
}

// Subscribed reports whether envelopes published now will come back to this instance.
func (b *RedisBus) Subscribed() bool {
	return b.subscribed.Load()
}

// Listen delivers envelopes from the channel until ctx is done. A failed or lost
// subscription is retried with exponential backoff.
func (b *RedisBus) Listen(ctx context.Context) error {
	backoff := b.retryMin
	for {
		live, err := b.listenOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if live {
			backoff = b.retryMin
		}
		b.logger.Warn("relay subscription unavailable; retrying",
			zap.String("channel", b.channel),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		backoff = min(backoff*2, b.retryMax)
	}
}

// listenOnce reports whether the subscription was established before it ended.
func (b *RedisBus) listenOnce(ctx context.Context) (bool, error) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return false, fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.subscribed.Store(true)
	defer b.subscribed.Store(false)
	b.logger.Info("relay subscribed", zap.String("channel", b.channel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case msg, ok := <-messages:
			if !ok {
				return true, errors.New("subscription closed")
			}
			b.handle(msg.Payload)
		}
	}
}

func (b *RedisBus) handle(raw string) {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Warn("relay envelope undecodable", zap.Error(err))
		return
	}
	if env.Room == "" {
		return
	}
	b.hub.Deliver(env.Room, env.ConnID, env.Payload)
}
