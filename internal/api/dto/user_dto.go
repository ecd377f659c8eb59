package dto

import (
	"time"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	FullName   string      `json:"full_name"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Department *string     `json:"department,omitempty"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a bearer token with its subject.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID         string      `json:"id"`
	FullName   string      `json:"full_name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Phone      *string     `json:"phone"`
	Department *string     `json:"department"`
	AvatarURL  *string     `json:"avatar_url"`
	CreatedAt  time.Time   `json:"created_at"`
}

// UpdateProfileRequest payload. Absent fields are left untouched.
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	AvatarURL  *string `json:"avatar_url"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserFromDomain maps a user onto its response shape.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		Role:       user.Role,
		Phone:      user.Phone,
		Department: user.Department,
		AvatarURL:  user.AvatarURL,
		CreatedAt:  user.CreatedAt,
	}
}
