package domain

import "time"

// TicketMessage captures one entry of a ticket's append-only thread.
// Status snapshots the ticket status in effect after the message was posted.
type TicketMessage struct {
	ID           string
	TicketID     string
	AuthorUserID string
	Message      string
	Status       TicketStatus
	CreatedAt    time.Time
}

// TicketMessageView is a message hydrated with its author's identity.
type TicketMessageView struct {
	TicketMessage
	AuthorName  string
	AuthorEmail string
}
