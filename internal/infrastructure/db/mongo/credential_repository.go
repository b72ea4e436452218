package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

const collectionCredentials = "identity_credentials"

// CredentialRepository persists local identity credentials.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

type credentialDoc struct {
	SubjectID    string `bson:"_id"`
	Email        string `bson:"email"`
	Name         string `bson:"name,omitempty"`
	PasswordHash string `bson:"password_hash"`
}

func (r *CredentialRepository) Create(ctx context.Context, cred *ports.Credential) (*ports.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if existing, err := r.FindByEmail(ctx, cred.Email); err == nil && existing != nil {
		return nil, domain.ErrCredentialExists
	}

	doc := credentialDoc{
		SubjectID:    cred.SubjectID,
		Email:        cred.Email,
		Name:         cred.Name,
		PasswordHash: cred.PasswordHash,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCredentialExists
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}
	return cred, nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*ports.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc credentialDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	return &ports.Credential{
		SubjectID:    doc.SubjectID,
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.PasswordHash,
	}, nil
}

// EnsureIndexes creates the unique email index backing duplicate detection.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
