package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB. The
// document is keyed by the identity provider's subject id, so the unique _id
// index enforces the one-profile-per-identity invariant.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// FindBySubject retrieves at most one profile by subject id.
func (r *ProfileRepository) FindBySubject(ctx context.Context, subjectID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

// Create inserts the profile and fetches it back so the caller receives the
// stored row, not the request, as the source of truth.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	return r.FindBySubject(ctx, profile.SubjectID)
}
