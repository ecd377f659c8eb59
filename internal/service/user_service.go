package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/config"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
)

// UserService coordinates registration, login and profile flows.
type UserService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	FullName   string
	Email      string
	Password   string
	Role       domain.Role
	Phone      *string
	Department *string
}

// UpdateProfileInput is a partial profile patch. Nil fields are untouched.
type UpdateProfileInput struct {
	FullName   *string
	Email      *string
	Phone      *string
	Department *string
	AvatarURL  *string
}

// Register creates an account and issues a session token.
//
// The effective role is decided here, never by the registrant alone:
// the first user of an empty directory becomes Admin (bootstrap), an Admin
// caller may create any role, and every other caller (anonymous included)
// gets a Client regardless of the requested role.
func (s *UserService) Register(ctx context.Context, input RegisterInput, callerRole domain.Role) (*domain.User, string, time.Time, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, domain.ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	var effectiveRole domain.Role
	switch {
	case count == 0:
		effectiveRole = domain.RoleAdmin
	case callerRole == domain.RoleAdmin:
		effectiveRole = input.Role
	default:
		effectiveRole = domain.RoleClient
	}
	if !effectiveRole.Valid() {
		effectiveRole = domain.RoleClient
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: hash,
		Role:         effectiveRole,
		Phone:        input.Phone,
		Department:   input.Department,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates by email and password.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, domain.ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, domain.ErrInvalidCredentials
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// GetByID returns the user's profile.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListAll returns every account ordered by name.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListTechnicians returns the technician directory for the assignment picker.
func (s *UserService) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleTechnician)
}

// UpdateProfile applies a partial patch. Changing the email fails with
// ErrEmailTaken when the normalized address collides with a different user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email := normalizeEmail(*input.Email)
		if other, err := s.users.GetByEmail(ctx, email); err == nil {
			if other.ID != userID {
				return nil, domain.ErrEmailTaken
			}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = email
	}
	if input.FullName != nil && strings.TrimSpace(*input.FullName) != "" {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrPasswordMismatch
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
