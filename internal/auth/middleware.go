package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	apperrors "github.com/alirazi1992/Update3-Ticketing/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the verified (userId, role) pair carried on every
// authenticated request. It is immutable per request and passed explicitly
// into service operations, never read from ambient state.
type Identity struct {
	UserID   string
	Role     domain.Role
	Email    string
	FullName string
}

// AuthMiddleware validates bearer tokens and stores the caller identity.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	if identity == nil {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// HandleOptional resolves the caller identity when a bearer token is
// present but lets anonymous callers through. Registration uses this: an
// anonymous registrant is treated as a Client-level caller.
func (m *AuthMiddleware) HandleOptional(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	if identity != nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	return &Identity{
		UserID:   claims.Subject,
		Role:     claims.Role,
		Email:    claims.Email,
		FullName: claims.FullName,
	}, nil
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
