package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SearchFilter carries the optional search criteria. Nil price bounds mean
// "no constraint"; both bounds are inclusive when set.
type SearchFilter struct {
	Name     string // case-insensitive substring match
	Category string // case-insensitive exact match
	MinPrice *float64
	MaxPrice *float64
}

// SweetRepository defines persistence operations for sweets.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	Update(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically subtracts n from the sweet's quantity,
	// guarded by quantity >= n. Returns ErrStockConflict when the guard
	// fails on an existing document.
	DecrementStock(ctx context.Context, id string, n int) (*domain.Sweet, error)
	// IncrementStock atomically adds n to the sweet's quantity.
	IncrementStock(ctx context.Context, id string, n int) (*domain.Sweet, error)
}
