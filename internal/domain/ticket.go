package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The ordering is
// cosmetic: writes are validated by role, never by current-state adjacency.
type TicketStatus string

const (
	TicketStatusNew              TicketStatus = "NEW"
	TicketStatusInProgress       TicketStatus = "IN_PROGRESS"
	TicketStatusWaitingForClient TicketStatus = "WAITING_FOR_CLIENT"
	TicketStatusResolved         TicketStatus = "RESOLVED"
	TicketStatusClosed           TicketStatus = "CLOSED"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusWaitingForClient,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CreatedByUserID never
// changes after creation; AssignedToUserID is set by admins only.
type Ticket struct {
	ID               string
	Title            string
	Description      string
	CategoryID       string
	SubcategoryID    *string
	Priority         TicketPriority
	Status           TicketStatus
	CreatedByUserID  string
	AssignedToUserID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DueDate          *time.Time
}

// TicketView is a ticket hydrated with category and participant names for
// API responses.
type TicketView struct {
	Ticket
	CategoryName        string
	SubcategoryName     *string
	CreatedByName       string
	CreatedByEmail      string
	CreatedByPhone      *string
	CreatedByDepartment *string
	AssignedToName      *string
	AssignedToEmail     *string
	AssignedToPhone     *string
}
