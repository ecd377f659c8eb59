package domain

import "time"

// Role enumerates the three caller roles of the help desk.
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleTechnician Role = "TECHNICIAN"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every account: clients submitting tickets,
// technicians working them and admins managing the desk.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	Department   *string
	AvatarURL    *string
	CreatedAt    time.Time
}
