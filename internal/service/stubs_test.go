package service

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
)

// In-memory repository stubs mirroring the Postgres implementations'
// contracts: pgx.ErrNoRows for absent rows, the same ordering, the same
// conjunctive filters.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type stubTicketRepo struct {
	tickets map[string]*domain.Ticket
	users   *stubUserRepo
}

func newStubTicketRepo(users *stubUserRepo) *stubTicketRepo {
	return &stubTicketRepo{tickets: map[string]*domain.Ticket{}, users: users}
}

func (r *stubTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *stubTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *stubTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *ticket
	return &cp, nil
}

func (r *stubTicketRepo) GetView(_ context.Context, id string) (*domain.TicketView, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.hydrate(ticket), nil
}

func (r *stubTicketRepo) ListViews(_ context.Context, filter repository.TicketFilter) ([]domain.TicketView, error) {
	var out []domain.TicketView
	for _, ticket := range r.tickets {
		if filter.ScopeCreatedBy != nil && ticket.CreatedByUserID != *filter.ScopeCreatedBy {
			continue
		}
		if filter.ScopeAssignedTo != nil && (ticket.AssignedToUserID == nil || *ticket.AssignedToUserID != *filter.ScopeAssignedTo) {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil && (ticket.AssignedToUserID == nil || *ticket.AssignedToUserID != *filter.AssignedTo) {
			continue
		}
		if filter.CreatedBy != nil && ticket.CreatedByUserID != *filter.CreatedBy {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(ticket.Title), needle) &&
				!strings.Contains(strings.ToLower(ticket.Description), needle) {
				continue
			}
		}
		out = append(out, *r.hydrate(ticket))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTicketRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tickets)), nil
}

func (r *stubTicketRepo) hydrate(ticket *domain.Ticket) *domain.TicketView {
	view := &domain.TicketView{Ticket: *ticket, CategoryName: "General"}
	if creator, ok := r.users.users[ticket.CreatedByUserID]; ok {
		view.CreatedByName = creator.FullName
		view.CreatedByEmail = creator.Email
		view.CreatedByPhone = creator.Phone
		view.CreatedByDepartment = creator.Department
	}
	if ticket.AssignedToUserID != nil {
		if assignee, ok := r.users.users[*ticket.AssignedToUserID]; ok {
			view.AssignedToName = &assignee.FullName
			view.AssignedToEmail = &assignee.Email
			view.AssignedToPhone = assignee.Phone
		}
	}
	return view
}

type stubMessageRepo struct {
	messages []domain.TicketMessage
	users    *stubUserRepo
	tickets  *stubTicketRepo
}

func newStubMessageRepo(users *stubUserRepo, tickets *stubTicketRepo) *stubMessageRepo {
	return &stubMessageRepo{users: users, tickets: tickets}
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.TicketMessage) error {
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubMessageRepo) CreateWithTicket(_ context.Context, msg *domain.TicketMessage, ticket *domain.Ticket) error {
	if _, ok := r.tickets.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *ticket
	r.tickets.tickets[ticket.ID] = &cp
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubMessageRepo) ListViewsByTicket(_ context.Context, ticketID string) ([]domain.TicketMessageView, error) {
	var out []domain.TicketMessageView
	for _, msg := range r.messages {
		if msg.TicketID != ticketID {
			continue
		}
		view := domain.TicketMessageView{TicketMessage: msg}
		if author, ok := r.users.users[msg.AuthorUserID]; ok {
			view.AuthorName = author.FullName
			view.AuthorEmail = author.Email
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	inUse      map[string]bool
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: map[string]*domain.Category{}, inUse: map[string]bool{}}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	if r.inUse[id] {
		return domain.ErrCategoryInUse
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *category
	return &cp, nil
}

func (r *stubCategoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubCategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) AddSubcategory(_ context.Context, sub *domain.Subcategory) error {
	category, ok := r.categories[sub.CategoryID]
	if !ok {
		return pgx.ErrNoRows
	}
	category.Subcategories = append(category.Subcategories, *sub)
	return nil
}

type stubNotificationRepo struct {
	notifications []domain.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, userID string) (bool, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}
