package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

const fkViolationCode = "23503"

// CategoryRepository manages the two-level category taxonomy.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	AddSubcategory(ctx context.Context, sub *domain.Subcategory) error
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

// Create inserts the category and its initial subcategories in one
// transaction.
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO categories (id, name, description, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5)`
	if _, err := tx.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	); err != nil {
		return err
	}

	const subQuery = `
        INSERT INTO subcategories (id, category_id, name, created_at)
        VALUES ($1,$2,$3,$4)`
	for i := range category.Subcategories {
		sub := &category.Subcategories[i]
		if _, err := tx.Exec(ctx, subQuery, sub.ID, sub.CategoryID, sub.Name, sub.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update touches name and description only; subcategories are immutable
// through this path.
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, description=$2, updated_at=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Description,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the category; subcategories cascade at the schema level.
// A foreign-key violation means tickets still reference it.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
			return domain.ErrCategoryInUse
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM categories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM categories WHERE name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *categoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	subs, err := r.listSubcategories(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	category.Subcategories = subs
	return &category, nil
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM categories ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		subs, err := r.listSubcategories(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Subcategories = subs
	}
	return result, nil
}

func (r *categoryRepository) AddSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	const query = `
        INSERT INTO subcategories (id, category_id, name, created_at)
        VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, query, sub.ID, sub.CategoryID, sub.Name, sub.CreatedAt)
	return err
}

func (r *categoryRepository) listSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	const query = `
        SELECT id, category_id, name, created_at
        FROM subcategories WHERE category_id=$1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Subcategory
	for rows.Next() {
		var sub domain.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
