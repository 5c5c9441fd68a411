package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// CreateSweetInput carries the fields accepted when creating a sweet.
// Price and Quantity are plain numbers: a JSON zero is indistinguishable
// from an omitted field, and the create rules treat both as missing.
type CreateSweetInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    float64
	Description string
}

// UpdateSweetInput carries a partial update. Nil means the field was not
// supplied; the service still applies the legacy zero-value fallback to
// supplied values (see SweetService.Update).
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *float64
}

// SweetService defines the inventory use cases.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, input UpdateSweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string, quantity float64) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, quantity float64) (*domain.Sweet, error)
}
