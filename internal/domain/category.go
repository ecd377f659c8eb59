package domain

import "time"

// Category is a top-level classification for tickets.
type Category struct {
	ID            string
	Name          string
	Description   *string
	Subcategories []Subcategory
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subcategory belongs to exactly one Category. The taxonomy is two levels
// deep, so no cycles are possible.
type Subcategory struct {
	ID         string
	CategoryID string
	Name       string
	CreatedAt  time.Time
}
