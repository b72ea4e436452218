package ports

import (
	"context"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

// ListingRepository defines persistence operations for the listing catalog.
type ListingRepository interface {
	// All returns the full catalog in stable insertion order.
	All(ctx context.Context) ([]domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) error
}
