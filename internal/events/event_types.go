package events

import (
	"time"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketMessageAdded  EventType = "ticket_message_added"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title      string                `json:"title"`
	CategoryID string                `json:"category_id"`
	Priority   domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TechnicianID string `json:"technician_id"`
	Title        string `json:"title"`
}

// TicketMessageAddedPayload carries what the notification outbox needs:
// the counterpart to notify and the ticket title for the templated message.
type TicketMessageAddedPayload struct {
	MessageID       string `json:"message_id"`
	TicketTitle     string `json:"ticket_title"`
	AuthorUserID    string `json:"author_user_id"`
	RecipientUserID string `json:"recipient_user_id"`
}
