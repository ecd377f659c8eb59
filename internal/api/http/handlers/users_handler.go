package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alirazi1992/Update3-Ticketing/internal/api/dto"
	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/service"
	apperrors "github.com/alirazi1992/Update3-Ticketing/pkg/util"
)

// UsersHandler manages profile and directory endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	user, err := h.users.GetByID(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserFromDomain(user)})
}

// UpdateProfile PUT /auth/me.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateProfile(c.Context(), identity.UserID, service.UpdateProfileInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		AvatarURL:  req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserFromDomain(user)})
}

// ChangePassword POST /auth/change-password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}

	if err := h.users.ChangePassword(c.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /users. Admin only; guarded by the router.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.UserFromDomain(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTechnicians GET /users/technicians. Populates the assignment picker;
// admin only, guarded by the router.
func (h *UsersHandler) ListTechnicians(c *fiber.Ctx) error {
	technicians, err := h.users.ListTechnicians(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(technicians))
	for i := range technicians {
		items = append(items, dto.UserFromDomain(&technicians[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
