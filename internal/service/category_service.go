package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
	"github.com/alirazi1992/Update3-Ticketing/internal/persistence"
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
)

// CategoryService manages the category catalog. Reads go through the Redis
// cache when one is configured; every mutation invalidates it.
type CategoryService struct {
	categories repository.CategoryRepository
	cache      *persistence.CategoryCache
}

// NewCategoryService constructs the service. cache may be nil.
func NewCategoryService(categories repository.CategoryRepository, cache *persistence.CategoryCache) *CategoryService {
	return &CategoryService{categories: categories, cache: cache}
}

// CategoryInput describes category creation and update payloads.
type CategoryInput struct {
	Name          string
	Description   *string
	Subcategories []string
}

// ListAll returns the catalog ordered by name, cache-first.
func (s *CategoryService) ListAll(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, categories)
	return categories, nil
}

// GetByID returns one category with its subcategories.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create adds a category with its initial subcategories in one transaction.
// Names are unique across the catalog.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryNameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, subName := range input.Subcategories {
		subName = strings.TrimSpace(subName)
		if subName == "" {
			continue
		}
		category.Subcategories = append(category.Subcategories, domain.Subcategory{
			ID:         uuid.NewString(),
			CategoryID: category.ID,
			Name:       subName,
			CreatedAt:  now,
		})
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return category, nil
}

// Update renames a category or changes its description.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return category, nil
}

// AddSubcategory appends a subcategory to an existing category.
func (s *CategoryService) AddSubcategory(ctx context.Context, categoryID, name string) (*domain.Subcategory, error) {
	if _, err := s.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	sub := &domain.Subcategory{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.categories.AddSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return sub, nil
}

// Delete removes a category. Categories referenced by tickets are protected
// by the database and reported as ErrCategoryInUse.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
