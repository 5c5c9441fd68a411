package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// SweetService implements the inventory use cases on top of a SweetRepository.
type SweetService struct {
	repo   ports.SweetRepository
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, logger: logger}
}

// Create validates and persists a new sweet.
//
// The "required" checks treat a zero price or quantity as missing. That is
// a legacy contract carried over on purpose: clients that send {price: 0}
// get "Price is required", not a range error.
func (s *SweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	if input.Name == "" {
		return nil, domain.ValidationError("Sweet name is required")
	}
	if input.Category == "" {
		return nil, domain.ValidationError("Category is required")
	}
	if input.Price == 0 {
		return nil, domain.ValidationError("Price is required")
	}
	if input.Quantity == 0 {
		return nil, domain.ValidationError("Quantity is required")
	}
	if input.Price < 0 {
		return nil, domain.ValidationError("Price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, domain.ValidationError("Quantity cannot be negative")
	}
	if input.Quantity != float64(int(input.Quantity)) {
		return nil, domain.ValidationError("Quantity must be an integer")
	}

	sweet := &domain.Sweet{
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Price:       input.Price,
		Quantity:    int(input.Quantity),
		Description: strings.TrimSpace(input.Description),
	}
	if err := validateSchema(sweet); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, sweet)
	if err != nil {
		s.logger.Error().Err(err).Str("name", sweet.Name).Msg("failed to create sweet")
		return nil, err
	}

	s.logger.Info().Str("id", created.ID).Str("name", created.Name).Str("category", created.Category).Msg("sweet created")
	return created, nil
}

// List returns every sweet, unfiltered and unpaginated.
func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.FindAll(ctx)
}

// Search returns the sweets matching every supplied filter.
func (s *SweetService) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Name = strings.TrimSpace(filter.Name)
	return s.repo.Search(ctx, filter)
}

// Update applies a partial update to an existing sweet.
//
// Range validation runs only on supplied fields, and the assignment step
// keeps the legacy zero-value fallback: a supplied 0 (or empty string) is
// discarded and the stored value kept, so {price: 0} passes validation yet
// leaves the price unchanged.
func (s *SweetService) Update(ctx context.Context, id string, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, domain.ValidationError("Price cannot be negative")
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, domain.ValidationError("Quantity cannot be negative")
		}
		if *input.Quantity != float64(int(*input.Quantity)) {
			return nil, domain.ValidationError("Quantity must be an integer")
		}
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		sweet.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		sweet.Category = strings.ToLower(strings.TrimSpace(*input.Category))
	}
	if input.Price != nil && *input.Price != 0 {
		sweet.Price = *input.Price
	}
	if input.Quantity != nil && *input.Quantity != 0 {
		sweet.Quantity = int(*input.Quantity)
	}

	if err := validateSchema(sweet); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, sweet)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", updated.ID).Msg("sweet updated")
	return updated, nil
}

// Delete removes a sweet by id.
func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("sweet deleted")
	return nil
}

// Purchase decrements stock by the requested quantity.
//
// The read classifies the failure mode (missing, empty, insufficient); the
// decrement itself is an atomic quantity-guarded update, so two concurrent
// purchases can never oversell the last units.
func (s *SweetService) Purchase(ctx context.Context, id string, quantity float64) (*domain.Sweet, error) {
	n, err := wholeQuantity(quantity, "Purchase")
	if err != nil {
		return nil, err
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet.Quantity == 0 {
		return nil, domain.ErrOutOfStock
	}
	if n > sweet.Quantity {
		return nil, &domain.InsufficientStockError{Available: sweet.Quantity}
	}

	updated, err := s.repo.DecrementStock(ctx, id, n)
	if errors.Is(err, domain.ErrStockConflict) {
		// Lost the race; report against the stock a retry would see.
		current, ferr := s.repo.FindByID(ctx, id)
		if ferr != nil {
			return nil, ferr
		}
		if current.Quantity == 0 {
			return nil, domain.ErrOutOfStock
		}
		return nil, &domain.InsufficientStockError{Available: current.Quantity}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", updated.ID).Int("purchased", n).Int("remaining", updated.Quantity).Msg("sweet purchased")
	return updated, nil
}

// Restock increments stock by the given quantity.
func (s *SweetService) Restock(ctx context.Context, id string, quantity float64) (*domain.Sweet, error) {
	n, err := wholeQuantity(quantity, "Restock")
	if err != nil {
		return nil, err
	}

	// Existence check first so an unknown id is a 404, not a silent no-op.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.IncrementStock(ctx, id, n)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", updated.ID).Int("restocked", n).Int("quantity", updated.Quantity).Msg("sweet restocked")
	return updated, nil
}

// wholeQuantity validates a stock-operation quantity: strictly positive and
// a whole number.
func wholeQuantity(quantity float64, op string) (int, error) {
	if quantity <= 0 {
		return 0, domain.ValidationError(op + " quantity must be greater than 0")
	}
	if quantity != float64(int(quantity)) {
		return 0, domain.ValidationError(op + " quantity must be an integer")
	}
	return int(quantity), nil
}

// validateSchema enforces the document-level field constraints shared by
// create and update.
func validateSchema(sweet *domain.Sweet) error {
	if len(sweet.Name) < 2 {
		return domain.ValidationError("Sweet name must be at least 2 characters long")
	}
	if len(sweet.Name) > 100 {
		return domain.ValidationError("Sweet name cannot exceed 100 characters")
	}
	if len(sweet.Category) < 2 {
		return domain.ValidationError("Category must be at least 2 characters long")
	}
	if len(sweet.Category) > 50 {
		return domain.ValidationError("Category cannot exceed 50 characters")
	}
	if len(sweet.Description) > 500 {
		return domain.ValidationError("Description cannot exceed 500 characters")
	}
	return nil
}
