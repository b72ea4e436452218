package ports

import (
	"context"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

// CreateListingInput carries all data needed to publish a new listing.
type CreateListingInput struct {
	Title         string
	Description   string
	Images        []string
	PricePerNight float64
	Location      string
	Capacity      int
	Amenities     []string
	Type          domain.ListingType
	OwnerID       string
	Features      domain.FeatureSet
}

// CatalogService exposes the listing catalog and its filtered views.
type CatalogService interface {
	// Search derives the visible subset for the query and criteria. The
	// derivation itself is pure and runs against an in-memory snapshot.
	Search(ctx context.Context, query string, criteria domain.FilterCriteria) ([]domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, input CreateListingInput) (*domain.Listing, error)
}
