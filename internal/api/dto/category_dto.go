package dto

import (
	"time"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// CreateCategoryRequest payload. Subcategories are created with the
// category in one transaction.
type CreateCategoryRequest struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Subcategories []string `json:"subcategories"`
}

// UpdateCategoryRequest payload.
type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CreateSubcategoryRequest payload.
type CreateSubcategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse is the catalog entry shape.
type CategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   *string               `json:"description"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// SubcategoryResponse shape.
type SubcategoryResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryFromDomain maps a category onto its response shape.
func CategoryFromDomain(category *domain.Category) CategoryResponse {
	subs := make([]SubcategoryResponse, 0, len(category.Subcategories))
	for i := range category.Subcategories {
		subs = append(subs, SubcategoryFromDomain(&category.Subcategories[i]))
	}
	return CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		Description:   category.Description,
		Subcategories: subs,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}

// SubcategoryFromDomain maps a subcategory onto its response shape.
func SubcategoryFromDomain(sub *domain.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         sub.ID,
		CategoryID: sub.CategoryID,
		Name:       sub.Name,
		CreatedAt:  sub.CreatedAt,
	}
}
