package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// TicketMessageRepository manages the append-only ticket threads.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	CreateWithTicket(ctx context.Context, msg *domain.TicketMessage, ticket *domain.Ticket) error
	ListViewsByTicket(ctx context.Context, ticketID string) ([]domain.TicketMessageView, error)
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO ticket_messages (id, ticket_id, author_user_id, message, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.TicketID,
		msg.AuthorUserID,
		msg.Message,
		msg.Status,
		msg.CreatedAt,
	)
	return err
}

// CreateWithTicket inserts the message and writes the ticket's status and
// updated_at in one transaction, so a thread entry never lands without its
// ticket touch and vice versa.
func (r *ticketMessageRepository) CreateWithTicket(ctx context.Context, msg *domain.TicketMessage, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const ticketQuery = `
        UPDATE tickets SET status=$1, updated_at=$2 WHERE id=$3`
	tag, err := tx.Exec(ctx, ticketQuery, ticket.Status, ticket.UpdatedAt, ticket.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	const msgQuery = `
        INSERT INTO ticket_messages (id, ticket_id, author_user_id, message, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := tx.Exec(ctx, msgQuery,
		msg.ID,
		msg.TicketID,
		msg.AuthorUserID,
		msg.Message,
		msg.Status,
		msg.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ticketMessageRepository) ListViewsByTicket(ctx context.Context, ticketID string) ([]domain.TicketMessageView, error) {
	const query = `
        SELECT m.id, m.ticket_id, m.author_user_id, m.message, m.status, m.created_at,
               u.full_name, u.email
        FROM ticket_messages m
        JOIN users u ON u.id = m.author_user_id
        WHERE m.ticket_id=$1
        ORDER BY m.created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketMessageView
	for rows.Next() {
		var view domain.TicketMessageView
		if err := rows.Scan(
			&view.ID,
			&view.TicketID,
			&view.AuthorUserID,
			&view.Message,
			&view.Status,
			&view.CreatedAt,
			&view.AuthorName,
			&view.AuthorEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, rows.Err()
}
