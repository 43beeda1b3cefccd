package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/events"
)

// NotificationService turns domain events into user-facing notifications. Delivery is a
// structured log line per recipient for now.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPostLiked, n.handlePostLiked)
	n.dispatcher.SubscribeAll(n.audit)
}

func (n *NotificationService) audit(_ context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("resource_id", event.ResourceID),
		zap.String("actor_user_id", event.ActorUserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePostLiked(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PostLikedPayload)
	if !ok || payload.OwnerUserID == event.ActorUserID {
		return nil
	}
	n.logger.Info("notify post author",
		zap.String("recipient_user_id", payload.OwnerUserID),
		zap.String("post_id", event.ResourceID),
		zap.String("liked_by", event.ActorUserID))
	return nil
}
