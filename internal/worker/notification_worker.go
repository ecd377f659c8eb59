package worker

import (
	"go.uber.org/zap"

	"github.com/alirazi1992/Update3-Ticketing/internal/events"
	"github.com/alirazi1992/Update3-Ticketing/internal/service"
)

// StartNotificationWorker wires the notification outbox to the event
// stream. Delivery is synchronous with the publishing request, so there is
// no goroutine to stop on shutdown.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger) {
	notifications.RegisterHandlers(dispatcher)
	logger.Info("notification worker subscribed", zap.String("event", string(events.EventTicketMessageAdded)))
}
