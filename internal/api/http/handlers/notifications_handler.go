package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alirazi1992/Update3-Ticketing/internal/api/dto"
	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/service"
	apperrors "github.com/alirazi1992/Update3-Ticketing/pkg/util"
)

// NotificationsHandler exposes the caller's notification feed.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	notifications, err := h.service.ListForUser(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NotificationFromDomain(&notifications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead PATCH /notifications/:id/read. Marking an already-read
// notification succeeds again.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.MarkRead(c.Context(), c.Params("id"), identity.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
