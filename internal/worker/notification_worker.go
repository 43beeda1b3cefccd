package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// StartNotificationWorker builds the notification subscriber and attaches it to the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	notifications := service.NewNotificationService(dispatcher, logger)
	notifications.RegisterHandlers()
	logger.Info("notification worker subscribed")
	return notifications
}
