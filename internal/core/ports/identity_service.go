package ports

import (
	"context"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

// IdentityService is the thin surface of the identity collaborator this
// system consumes: credentials sign-in and session issuance. A hosted
// provider can replace the local implementation as long as its tokens carry
// the same claims.
type IdentityService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Session, error)
	// SignIn returns a signed session token and the session it encodes.
	SignIn(ctx context.Context, email, password string) (string, *domain.Session, error)
}

// Credential is an email+password account record held by the local identity
// provider. Distinct from Profile: it belongs to the identity collaborator,
// not to the application.
type Credential struct {
	SubjectID    string
	Email        string
	Name         string
	PasswordHash string
}

// CredentialRepository persists local identity credentials.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	Create(ctx context.Context, cred *Credential) (*Credential, error)
}
