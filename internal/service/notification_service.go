package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/events"
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
)

// NotificationService maintains the per-user notification outbox. Rows are
// produced by domain events and consumed through the REST surface.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(notifications repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// ListForUser returns the caller's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// MarkRead flags a notification as read. Only the owner can mark it, and an
// already-read notification marks again without error.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	ok, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// Create stores a notification row directly.
func (s *NotificationService) Create(ctx context.Context, userID, message string) (*domain.Notification, error) {
	notification := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// RegisterHandlers subscribes the outbox to the events it materializes.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketMessageAdded, s.onMessageAdded)
}

func (s *NotificationService) onMessageAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketMessageAddedPayload)
	if !ok {
		s.logger.Warn("notification handler received unexpected payload",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
		return nil
	}

	message := fmt.Sprintf("New message on ticket '%s'", payload.TicketTitle)
	if _, err := s.Create(ctx, payload.RecipientUserID, message); err != nil {
		s.logger.Error("failed to write notification",
			zap.String("ticket_id", event.TicketID),
			zap.String("recipient", payload.RecipientUserID),
			zap.Error(err))
		return err
	}
	return nil
}
