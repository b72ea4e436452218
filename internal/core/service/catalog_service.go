package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roamstead/camper-rentals/internal/api/metrics"
	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// CatalogService serves listing searches from an in-memory snapshot of the
// catalog so the filter derivation itself stays pure and I/O-free.
type CatalogService struct {
	repo ports.ListingRepository
	log  zerolog.Logger

	mu       sync.RWMutex
	snapshot []domain.Listing
	loaded   bool
}

func NewCatalogService(repo ports.ListingRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// Load fetches the full catalog into the snapshot. Called once at startup;
// Search falls back to a lazy load if it was skipped.
func (s *CatalogService) Load(ctx context.Context) error {
	listings, err := s.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	s.snapshot = listings
	s.loaded = true
	s.mu.Unlock()

	s.log.Info().Int("listings", len(listings)).Msg("catalog loaded")
	return nil
}

// Search derives the visible subset for query and criteria.
func (s *CatalogService) Search(ctx context.Context, query string, criteria domain.FilterCriteria) ([]domain.Listing, error) {
	s.mu.RLock()
	loaded := s.loaded
	catalog := s.snapshot
	s.mu.RUnlock()

	if !loaded {
		if err := s.Load(ctx); err != nil {
			return nil, err
		}
		s.mu.RLock()
		catalog = s.snapshot
		s.mu.RUnlock()
	}

	metrics.CatalogSearchesTotal.Inc()
	return domain.ApplyFilters(catalog, query, criteria), nil
}

// Get returns a single listing by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new listing for an owner and appends it to the snapshot.
func (s *CatalogService) Create(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	if !domain.ValidListingType(input.Type) {
		return nil, domain.ErrInvalidListingType
	}

	listing := &domain.Listing{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Images:        input.Images,
		PricePerNight: input.PricePerNight,
		Location:      input.Location,
		Capacity:      input.Capacity,
		Amenities:     input.Amenities,
		Type:          input.Type,
		OwnerID:       input.OwnerID,
		Rating:        domain.DefaultRating,
		ReviewCount:   0,
		Features:      input.Features,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		s.log.Error().Err(err).Str("owner", input.OwnerID).Msg("failed to create listing")
		return nil, err
	}

	s.mu.Lock()
	if s.loaded {
		s.snapshot = append(s.snapshot, *listing)
	}
	s.mu.Unlock()

	metrics.ListingsCreatedTotal.WithLabelValues(string(listing.Type)).Inc()
	s.log.Info().Str("listing_id", listing.ID).Str("owner", input.OwnerID).Msg("listing created")
	return listing, nil
}
