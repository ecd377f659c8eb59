package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// TicketFilter captures listing parameters. The Scope fields carry the
// role-based restriction and are applied in addition to the caller-supplied
// filters, so all predicates stay conjunctive.
type TicketFilter struct {
	ScopeCreatedBy  *string
	ScopeAssignedTo *string
	Status          *domain.TicketStatus
	Priority        *domain.TicketPriority
	AssignedTo      *string
	CreatedBy       *string
	Search          *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetView(ctx context.Context, id string) (*domain.TicketView, error)
	ListViews(ctx context.Context, filter TicketFilter) ([]domain.TicketView, error)
	Count(ctx context.Context) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, title, description, category_id, subcategory_id, priority, status,
                             created_by_user_id, assigned_to_user_id, created_at, updated_at, due_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.CategoryID,
		ticket.SubcategoryID,
		ticket.Priority,
		ticket.Status,
		ticket.CreatedByUserID,
		ticket.AssignedToUserID,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.DueDate,
	)
	return err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, category_id=$3, subcategory_id=$4, priority=$5,
            status=$6, assigned_to_user_id=$7, updated_at=$8, due_date=$9
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.CategoryID,
		ticket.SubcategoryID,
		ticket.Priority,
		ticket.Status,
		ticket.AssignedToUserID,
		ticket.UpdatedAt,
		ticket.DueDate,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, title, description, category_id, subcategory_id, priority, status,
               created_by_user_id, assigned_to_user_id, created_at, updated_at, due_date
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.CategoryID,
		&ticket.SubcategoryID,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedByUserID,
		&ticket.AssignedToUserID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.DueDate,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

const ticketViewSelect = `
        SELECT t.id, t.title, t.description, t.category_id, t.subcategory_id, t.priority, t.status,
               t.created_by_user_id, t.assigned_to_user_id, t.created_at, t.updated_at, t.due_date,
               c.name, sc.name,
               cu.full_name, cu.email, cu.phone, cu.department,
               au.full_name, au.email, au.phone
        FROM tickets t
        JOIN categories c ON c.id = t.category_id
        LEFT JOIN subcategories sc ON sc.id = t.subcategory_id
        JOIN users cu ON cu.id = t.created_by_user_id
        LEFT JOIN users au ON au.id = t.assigned_to_user_id`

func (r *ticketRepository) GetView(ctx context.Context, id string) (*domain.TicketView, error) {
	query := ticketViewSelect + ` WHERE t.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	view, err := scanTicketView(row)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (r *ticketRepository) ListViews(ctx context.Context, filter TicketFilter) ([]domain.TicketView, error) {
	clauses := []string{"1=1"}
	args := []any{}

	addClause := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if filter.ScopeCreatedBy != nil {
		addClause("t.created_by_user_id", *filter.ScopeCreatedBy)
	}
	if filter.ScopeAssignedTo != nil {
		addClause("t.assigned_to_user_id", *filter.ScopeAssignedTo)
	}
	if filter.Status != nil {
		addClause("t.status", *filter.Status)
	}
	if filter.Priority != nil {
		addClause("t.priority", *filter.Priority)
	}
	if filter.AssignedTo != nil {
		addClause("t.assigned_to_user_id", *filter.AssignedTo)
	}
	if filter.CreatedBy != nil {
		addClause("t.created_by_user_id", *filter.CreatedBy)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(t.title) LIKE %s OR LOWER(t.description) LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.created_at DESC`,
		ticketViewSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketView
	for rows.Next() {
		view, err := scanTicketView(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *view)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanTicketView(row pgx.Row) (*domain.TicketView, error) {
	var view domain.TicketView
	if err := row.Scan(
		&view.ID,
		&view.Title,
		&view.Description,
		&view.CategoryID,
		&view.SubcategoryID,
		&view.Priority,
		&view.Status,
		&view.CreatedByUserID,
		&view.AssignedToUserID,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.DueDate,
		&view.CategoryName,
		&view.SubcategoryName,
		&view.CreatedByName,
		&view.CreatedByEmail,
		&view.CreatedByPhone,
		&view.CreatedByDepartment,
		&view.AssignedToName,
		&view.AssignedToEmail,
		&view.AssignedToPhone,
	); err != nil {
		return nil, err
	}
	return &view, nil
}
