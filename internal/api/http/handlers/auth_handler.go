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

// AuthHandler manages registration and login.
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register POST /auth/register. Anonymous callers are allowed; the service
// decides the effective role from the caller and directory state.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("full_name, email, password required", nil)
	}
	if req.Role != "" && !req.Role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}

	callerRole := domain.Role("")
	if identity, ok := auth.IdentityFromContext(c); ok {
		callerRole = identity.Role
	}

	user, token, expiresAt, err := h.users.Register(c.Context(), service.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Phone:      req.Phone,
		Department: req.Department,
	}, callerRole)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserFromDomain(user),
	}})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, expiresAt, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserFromDomain(user),
	}})
}
