package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alirazi1992/Update3-Ticketing/internal/api/dto"
	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/service"
	apperrors "github.com/alirazi1992/Update3-Ticketing/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets. Client role only; guarded by the router.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || req.CategoryID == "" {
		return apperrors.NewValidationError("title, description, category_id required", nil)
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": req.Priority})
	}

	view, err := h.service.Create(c.Context(), *identity, service.TicketCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Priority:      req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.TicketFromView(view)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	filter, err := parseTicketListQuery(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Context(), *identity, filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.TicketFromView(&views[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	view, err := h.service.Get(c.Context(), *identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromView(view)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != nil && !req.Status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": *req.Priority})
	}

	view, err := h.service.Update(c.Context(), *identity, c.Params("id"), service.TicketUpdatePatch{
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromView(view)})
}

// Assign POST /tickets/:id/assign. Admin only; guarded by the router.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == "" {
		return apperrors.NewValidationError("technician_id required", nil)
	}

	view, err := h.service.Assign(c.Context(), *identity, c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromView(view)})
}

// ListMessages GET /tickets/:id/messages.
func (h *TicketsHandler) ListMessages(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	messages, err := h.service.GetMessages(c.Context(), *identity, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.TicketMessageFromView(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddMessage POST /tickets/:id/messages.
func (h *TicketsHandler) AddMessage(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}
	if req.Status != nil && !req.Status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
	}

	message, err := h.service.AddMessage(c.Context(), *identity, c.Params("id"), service.MessageInput{
		Message:         req.Message,
		RequestedStatus: req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.TicketMessageFromView(message)})
}

func parseTicketListQuery(c *fiber.Ctx) (service.TicketListFilter, error) {
	filter := service.TicketListFilter{}
	if raw := c.Query("status"); raw != "" {
		status := domain.TicketStatus(strings.TrimSpace(raw))
		if !status.Valid() {
			return filter, apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.TicketPriority(strings.TrimSpace(raw))
		if !priority.Valid() {
			return filter, apperrors.NewValidationError("unknown priority", map[string]any{"priority": raw})
		}
		filter.Priority = &priority
	}
	if raw := c.Query("assigned_to"); raw != "" {
		filter.AssignedTo = &raw
	}
	if raw := c.Query("created_by"); raw != "" {
		filter.CreatedBy = &raw
	}
	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		filter.Search = &raw
	}
	return filter, nil
}
