package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// FindByEmail retrieves a user projection without the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailWithPassword retrieves a user including the normally-hidden
	// password hash, for login verification only.
	FindByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
