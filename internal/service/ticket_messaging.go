package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/events"
)

// MessageInput is a message posted to a ticket thread. RequestedStatus is an
// optional status change bundled with the message; it is subject to the same
// role gate as a direct update.
type MessageInput struct {
	Message         string
	RequestedStatus *domain.TicketStatus
}

// GetMessages returns the ticket's thread in chronological order. Access
// follows the same visibility rule as Get.
func (s *TicketService) GetMessages(ctx context.Context, identity auth.Identity, ticketID string) ([]domain.TicketMessageView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	if !visibleTo(ticket, identity.UserID, identity.Role) {
		return nil, domain.ErrTicketNotFound
	}
	return s.messages.ListViewsByTicket(ctx, ticketID)
}

// AddMessage appends to the thread, optionally applies a bundled status
// change, and records the ticket's resulting status on the message row.
// Authorization is decided from the author's stored role, and a denied
// author gets the same ErrTicketNotFound as a missing ticket. The ticket is
// touched on every message, status change or not, and the two writes land
// in one transaction.
func (s *TicketService) AddMessage(ctx context.Context, identity auth.Identity, ticketID string, input MessageInput) (*domain.TicketMessageView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	author, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !visibleTo(ticket, author.ID, author.Role) {
		return nil, domain.ErrTicketNotFound
	}

	now := time.Now().UTC()
	oldStatus := ticket.Status
	if input.RequestedStatus != nil && statusAllowedFor(author.Role, *input.RequestedStatus) {
		ticket.Status = *input.RequestedStatus
	}
	ticket.UpdatedAt = now

	message := &domain.TicketMessage{
		ID:           uuid.NewString(),
		TicketID:     ticket.ID,
		AuthorUserID: author.ID,
		Message:      strings.TrimSpace(input.Message),
		Status:       ticket.Status,
		CreatedAt:    now,
	}
	if err := s.messages.CreateWithTicket(ctx, message, ticket); err != nil {
		return nil, err
	}

	if ticket.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Actor:    events.Actor{UserID: author.ID, Role: author.Role},
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: author.ID, Role: author.Role},
		Payload: events.TicketMessageAddedPayload{
			MessageID:       message.ID,
			TicketTitle:     ticket.Title,
			AuthorUserID:    author.ID,
			RecipientUserID: messageRecipient(ticket, author.ID),
		},
	})

	return &domain.TicketMessageView{
		TicketMessage: *message,
		AuthorName:    author.FullName,
		AuthorEmail:   author.Email,
	}, nil
}

// messageRecipient picks the other party of the conversation: the assignee
// unless the author is the assignee, in which case the creator. Unassigned
// tickets always route to the creator, even when the creator wrote the
// message.
func messageRecipient(ticket *domain.Ticket, authorID string) string {
	if ticket.AssignedToUserID != nil && *ticket.AssignedToUserID != authorID {
		return *ticket.AssignedToUserID
	}
	return ticket.CreatedByUserID
}
