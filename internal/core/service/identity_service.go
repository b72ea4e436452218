package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// IdentityService is the local credentials identity provider: email+password
// accounts and HS256 session tokens. It implements the same thin surface a
// hosted provider would be consumed through.
type IdentityService struct {
	repo      ports.CredentialRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewIdentityService(repo ports.CredentialRepository, jwtSecret string, tokenTTL time.Duration) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a credential record. It does not create a profile: the
// Session Resolver routes the fresh identity through profile setup.
func (s *IdentityService) Register(ctx context.Context, email, password, name string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cred, err := s.repo.Create(ctx, &ports.Credential{
		SubjectID:    uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return sessionFor(cred), nil
}

// SignIn authenticates a credential and returns a signed session token plus
// the session it encodes.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	cred, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(cred)
	if err != nil {
		return "", nil, err
	}
	return token, sessionFor(cred), nil
}

func sessionFor(cred *ports.Credential) *domain.Session {
	return &domain.Session{
		SubjectID: cred.SubjectID,
		Email:     cred.Email,
		Name:      cred.Name,
	}
}

func (s *IdentityService) generateToken(cred *ports.Credential) (string, error) {
	claims := jwt.MapClaims{
		"sub":   cred.SubjectID,
		"email": cred.Email,
		"name":  cred.Name,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
