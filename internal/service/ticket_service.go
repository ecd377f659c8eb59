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
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
)

// TicketService implements the ticket lifecycle and its access-control
// policy. Every operation receives the verified caller identity explicitly.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.TicketMessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title         string
	Description   string
	CategoryID    string
	SubcategoryID *string
	Priority      domain.TicketPriority
}

// TicketListFilter describes optional listing filters, applied conjunctively
// after the role-based visibility scope.
type TicketListFilter struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssignedTo *string
	CreatedBy  *string
	Search     *string
}

// TicketUpdatePatch is a partial ticket update. Fields the caller's role may
// not touch are silently ignored, never an error. DueDate is applied as-is
// for admins, so a nil value clears the due date.
type TicketUpdatePatch struct {
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	AssignedTo  *string
	DueDate     *time.Time
	Description *string
}

// visibleTo is the visibility predicate shared by every per-ticket
// operation: clients see only tickets they created, technicians only
// tickets assigned to them, admins everything.
func visibleTo(ticket *domain.Ticket, userID string, role domain.Role) bool {
	switch role {
	case domain.RoleClient:
		return ticket.CreatedByUserID == userID
	case domain.RoleTechnician:
		return ticket.AssignedToUserID != nil && *ticket.AssignedToUserID == userID
	case domain.RoleAdmin:
		return true
	}
	return false
}

// statusAllowedFor is the transition rule: role-gated, independent of the
// current status. Clients may only push a ticket to WaitingForClient or
// Closed; technicians and admins may set any status.
func statusAllowedFor(role domain.Role, requested domain.TicketStatus) bool {
	if role == domain.RoleClient {
		return requested == domain.TicketStatusWaitingForClient || requested == domain.TicketStatusClosed
	}
	return requested.Valid()
}

// Create opens a ticket for the calling client. The Client-role gate lives
// at the HTTP boundary; here the creator is simply recorded and the status
// forced to New.
func (s *TicketService) Create(ctx context.Context, identity auth.Identity, input TicketCreateInput) (*domain.TicketView, error) {
	now := time.Now().UTC()
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		CategoryID:      input.CategoryID,
		SubcategoryID:   input.SubcategoryID,
		Priority:        priority,
		Status:          domain.TicketStatusNew,
		CreatedByUserID: identity.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: identity.UserID, Role: identity.Role},
		Payload: events.TicketCreatedPayload{
			Title:      ticket.Title,
			CategoryID: ticket.CategoryID,
			Priority:   ticket.Priority,
		},
	})

	return s.tickets.GetView(ctx, ticket.ID)
}

// Get returns a hydrated ticket, or ErrTicketNotFound when the ticket is
// absent or hidden from the caller. Hidden and absent are indistinguishable
// on purpose.
func (s *TicketService) Get(ctx context.Context, identity auth.Identity, id string) (*domain.TicketView, error) {
	view, err := s.tickets.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	if !visibleTo(&view.Ticket, identity.UserID, identity.Role) {
		return nil, domain.ErrTicketNotFound
	}
	return view, nil
}

// List returns tickets visible to the caller, newest first, with the
// optional filters ANDed on top of the role scope.
func (s *TicketService) List(ctx context.Context, identity auth.Identity, filter TicketListFilter) ([]domain.TicketView, error) {
	repoFilter := repository.TicketFilter{
		Status:     filter.Status,
		Priority:   filter.Priority,
		AssignedTo: filter.AssignedTo,
		CreatedBy:  filter.CreatedBy,
		Search:     filter.Search,
	}
	switch identity.Role {
	case domain.RoleClient:
		userID := identity.UserID
		repoFilter.ScopeCreatedBy = &userID
	case domain.RoleTechnician:
		userID := identity.UserID
		repoFilter.ScopeAssignedTo = &userID
	}
	return s.tickets.ListViews(ctx, repoFilter)
}

// Update applies a role-filtered patch. UpdatedAt is stamped whenever the
// operation reaches persistence, even when every patched field was ignored.
func (s *TicketService) Update(ctx context.Context, identity auth.Identity, id string, patch TicketUpdatePatch) (*domain.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	if !visibleTo(ticket, identity.UserID, identity.Role) {
		return nil, domain.ErrTicketNotFound
	}

	oldStatus := ticket.Status

	if patch.Description != nil && identity.Role != domain.RoleTechnician {
		ticket.Description = *patch.Description
	}
	if patch.Priority != nil && identity.Role != domain.RoleTechnician {
		ticket.Priority = *patch.Priority
	}
	if patch.Status != nil && statusAllowedFor(identity.Role, *patch.Status) {
		ticket.Status = *patch.Status
	}
	if identity.Role == domain.RoleAdmin {
		if patch.AssignedTo != nil {
			ticket.AssignedToUserID = patch.AssignedTo
		}
		ticket.DueDate = patch.DueDate
	}

	ticket.UpdatedAt = time.Now().UTC()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if ticket.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Actor:    events.Actor{UserID: identity.UserID, Role: identity.Role},
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}

	// Re-read through the caller's own visibility, so for example an admin
	// reassigning away from a technician still answers as that caller sees it.
	return s.Get(ctx, identity, id)
}

// Assign gives the ticket to a technician and forces it to InProgress, no
// matter what state it was in. The target is not checked for the
// Technician role. The read-back runs at admin level so the response is
// never hidden by the assignee-based visibility rule.
func (s *TicketService) Assign(ctx context.Context, actor auth.Identity, id, technicianID string) (*domain.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	ticket.AssignedToUserID = &technicianID
	ticket.Status = domain.TicketStatusInProgress
	ticket.UpdatedAt = time.Now().UTC()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.TicketAssignedPayload{
			TechnicianID: technicianID,
			Title:        ticket.Title,
		},
	})

	return s.tickets.GetView(ctx, ticket.ID)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
