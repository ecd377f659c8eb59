package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/events"
)

type ticketFixture struct {
	svc      *TicketService
	tickets  *stubTicketRepo
	messages *stubMessageRepo
	users    *stubUserRepo

	client     auth.Identity
	otherUser  auth.Identity
	technician auth.Identity
	tech2      auth.Identity
	admin      auth.Identity
}

func newTicketFixture() *ticketFixture {
	users := newStubUserRepo()
	tickets := newStubTicketRepo(users)
	messages := newStubMessageRepo(users, tickets)

	addUser := func(name, email string, role domain.Role) auth.Identity {
		user := &domain.User{
			ID:       uuid.NewString(),
			FullName: name,
			Email:    email,
			Role:     role,
		}
		users.users[user.ID] = user
		return auth.Identity{UserID: user.ID, Role: role, Email: email, FullName: name}
	}

	f := &ticketFixture{
		tickets:  tickets,
		messages: messages,
		users:    users,
	}
	f.client = addUser("Client One", "client1@test.com", domain.RoleClient)
	f.otherUser = addUser("Client Two", "client2@test.com", domain.RoleClient)
	f.technician = addUser("Tech One", "tech1@test.com", domain.RoleTechnician)
	f.tech2 = addUser("Tech Two", "tech2@test.com", domain.RoleTechnician)
	f.admin = addUser("Admin", "admin@test.com", domain.RoleAdmin)

	f.svc = NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		MessageRepo: messages,
		UserRepo:    users,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	return f
}

func (f *ticketFixture) createTicket(t *testing.T) *domain.TicketView {
	t.Helper()
	view, err := f.svc.Create(context.Background(), f.client, TicketCreateInput{
		Title:       "Printer broken",
		Description: "Paper jam on the third floor",
		CategoryID:  "cat-hardware",
		Priority:    domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return view
}

func TestCreateTicketDefaults(t *testing.T) {
	f := newTicketFixture()
	view, err := f.svc.Create(context.Background(), f.client, TicketCreateInput{
		Title:       "No priority given",
		Description: "desc",
		CategoryID:  "cat-hardware",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Status != domain.TicketStatusNew {
		t.Fatalf("status = %s, want %s", view.Status, domain.TicketStatusNew)
	}
	if view.Priority != domain.TicketPriorityMedium {
		t.Fatalf("priority = %s, want %s", view.Priority, domain.TicketPriorityMedium)
	}
	if view.CreatedByUserID != f.client.UserID {
		t.Fatalf("creator = %s, want %s", view.CreatedByUserID, f.client.UserID)
	}
}

func TestGetTicketVisibility(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	if _, err := f.svc.Get(ctx, f.client, ticket.ID); err != nil {
		t.Fatalf("creator get: %v", err)
	}
	if _, err := f.svc.Get(ctx, f.admin, ticket.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	// Another client, and a technician the ticket is not assigned to, both
	// get the same answer as for a ticket that does not exist.
	if _, err := f.svc.Get(ctx, f.otherUser, ticket.ID); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("other client err = %v, want ErrTicketNotFound", err)
	}
	if _, err := f.svc.Get(ctx, f.technician, ticket.ID); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("unassigned technician err = %v, want ErrTicketNotFound", err)
	}
	if _, err := f.svc.Get(ctx, f.client, "no-such-id"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("absent ticket err = %v, want ErrTicketNotFound", err)
	}
}

func TestListTicketsScopedByRole(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()
	ticket := f.createTicket(t)
	if _, err := f.svc.Create(ctx, f.otherUser, TicketCreateInput{
		Title: "Other ticket", Description: "d", CategoryID: "cat-hardware",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Assign(ctx, f.admin, ticket.ID, f.technician.UserID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	clientList, err := f.svc.List(ctx, f.client, TicketListFilter{})
	if err != nil {
		t.Fatalf("client list: %v", err)
	}
	if len(clientList) != 1 || clientList[0].ID != ticket.ID {
		t.Fatalf("client sees %d tickets, want its own 1", len(clientList))
	}

	techList, err := f.svc.List(ctx, f.technician, TicketListFilter{})
	if err != nil {
		t.Fatalf("tech list: %v", err)
	}
	if len(techList) != 1 || techList[0].ID != ticket.ID {
		t.Fatalf("technician sees %d tickets, want assigned 1", len(techList))
	}

	adminList, err := f.svc.List(ctx, f.admin, TicketListFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminList) != 2 {
		t.Fatalf("admin sees %d tickets, want 2", len(adminList))
	}

	// A client-supplied createdBy filter cannot widen the scope past itself.
	other := f.otherUser.UserID
	widened, err := f.svc.List(ctx, f.client, TicketListFilter{CreatedBy: &other})
	if err != nil {
		t.Fatalf("client filtered list: %v", err)
	}
	if len(widened) != 0 {
		t.Fatalf("client widened scope to %d tickets, want 0", len(widened))
	}
}

func TestClientStatusWriteScope(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	resolved := domain.TicketStatusResolved
	view, err := f.svc.Update(ctx, f.client, ticket.ID, TicketUpdatePatch{Status: &resolved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Status != domain.TicketStatusNew {
		t.Fatalf("client pushed status to %s, want ignored (%s)", view.Status, domain.TicketStatusNew)
	}

	closed := domain.TicketStatusClosed
	view, err = f.svc.Update(ctx, f.client, ticket.ID, TicketUpdatePatch{Status: &closed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Status != domain.TicketStatusClosed {
		t.Fatalf("status = %s, want %s", view.Status, domain.TicketStatusClosed)
	}
}

func TestTechnicianFieldLock(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	if _, err := f.svc.Assign(ctx, f.admin, ticket.ID, f.technician.UserID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	low := domain.TicketPriorityLow
	desc := "rewritten"
	resolved := domain.TicketStatusResolved
	view, err := f.svc.Update(ctx, f.technician, ticket.ID, TicketUpdatePatch{
		Priority:    &low,
		Description: &desc,
		Status:      &resolved,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Status != domain.TicketStatusResolved {
		t.Fatalf("status = %s, want %s", view.Status, domain.TicketStatusResolved)
	}
	if view.Priority != domain.TicketPriorityHigh {
		t.Fatalf("technician changed priority to %s, want locked %s", view.Priority, domain.TicketPriorityHigh)
	}
	if view.Description != "Paper jam on the third floor" {
		t.Fatalf("technician changed description to %q", view.Description)
	}
}

func TestUnassignedTechnicianCannotUpdate(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	resolved := domain.TicketStatusResolved
	if _, err := f.svc.Update(ctx, f.technician, ticket.ID, TicketUpdatePatch{Status: &resolved}); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("err = %v, want ErrTicketNotFound", err)
	}

	if _, err := f.svc.Assign(ctx, f.admin, ticket.ID, f.technician.UserID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	view, err := f.svc.Update(ctx, f.technician, ticket.ID, TicketUpdatePatch{Status: &resolved})
	if err != nil {
		t.Fatalf("update after assign: %v", err)
	}
	if view.Status != domain.TicketStatusResolved {
		t.Fatalf("status = %s, want %s", view.Status, domain.TicketStatusResolved)
	}
}

func TestAssignForcesInProgress(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	closed := domain.TicketStatusClosed
	if _, err := f.svc.Update(ctx, f.client, ticket.ID, TicketUpdatePatch{Status: &closed}); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Assignment restarts the lifecycle regardless of the current state.
	view, err := f.svc.Assign(ctx, f.admin, ticket.ID, f.technician.UserID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if view.Status != domain.TicketStatusInProgress {
		t.Fatalf("status = %s, want %s", view.Status, domain.TicketStatusInProgress)
	}
	if view.AssignedToUserID == nil || *view.AssignedToUserID != f.technician.UserID {
		t.Fatalf("assignee = %v, want %s", view.AssignedToUserID, f.technician.UserID)
	}
}

func TestReassignReturnsFullView(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	if _, err := f.svc.Assign(ctx, f.admin, ticket.ID, f.technician.UserID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	view, err := f.svc.Assign(ctx, f.admin, ticket.ID, f.tech2.UserID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if view.AssignedToUserID == nil || *view.AssignedToUserID != f.tech2.UserID {
		t.Fatalf("assignee = %v, want %s", view.AssignedToUserID, f.tech2.UserID)
	}
}

func TestAdminDueDateAlwaysWritten(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	due := time.Now().UTC().Add(48 * time.Hour)
	view, err := f.svc.Update(ctx, f.admin, ticket.ID, TicketUpdatePatch{DueDate: &due})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.DueDate == nil || !view.DueDate.Equal(due) {
		t.Fatalf("due date = %v, want %v", view.DueDate, due)
	}

	// An admin patch without a due date clears it.
	view, err = f.svc.Update(ctx, f.admin, ticket.ID, TicketUpdatePatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.DueDate != nil {
		t.Fatalf("due date = %v, want cleared", view.DueDate)
	}
}

func TestUpdateStampsUpdatedAt(t *testing.T) {
	f := newTicketFixture()
	ticket := f.createTicket(t)
	ctx := context.Background()

	// Writes race last-write-wins at the storage layer; there is no
	// version check. The stamp still moves on every accepted update, even
	// one whose fields were all ignored.
	time.Sleep(5 * time.Millisecond)
	resolved := domain.TicketStatusResolved
	view, err := f.svc.Update(ctx, f.client, ticket.ID, TicketUpdatePatch{Status: &resolved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !view.UpdatedAt.After(ticket.UpdatedAt) {
		t.Fatalf("UpdatedAt not advanced: %v -> %v", ticket.UpdatedAt, view.UpdatedAt)
	}
}
