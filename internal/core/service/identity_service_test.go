package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

type stubCredentialRepo struct {
	byEmail map[string]*ports.Credential
	findErr error
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{byEmail: make(map[string]*ports.Credential)}
}

func (s *stubCredentialRepo) FindByEmail(_ context.Context, email string) (*ports.Credential, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	cred, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return cred, nil
}

func (s *stubCredentialRepo) Create(_ context.Context, cred *ports.Credential) (*ports.Credential, error) {
	if _, ok := s.byEmail[cred.Email]; ok {
		return nil, domain.ErrCredentialExists
	}
	stored := *cred
	s.byEmail[cred.Email] = &stored
	return &stored, nil
}

const testSecret = "test-secret"

func TestIdentityService_RegisterHashesPassword(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := NewIdentityService(repo, testSecret, time.Hour)

	session, err := svc.Register(context.Background(), "jane@example.com", "hunter22", "Jane")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if session.SubjectID == "" || session.Email != "jane@example.com" || session.Name != "Jane" {
		t.Fatalf("unexpected session: %+v", session)
	}

	stored := repo.byEmail["jane@example.com"]
	if stored.PasswordHash == "hunter22" {
		t.Fatalf("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")) != nil {
		t.Fatalf("stored hash does not verify the password")
	}
}

func TestIdentityService_RegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := NewIdentityService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "jane@example.com", "pw1", "Jane"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "jane@example.com", "pw2", "Janet"); !errors.Is(err, domain.ErrCredentialExists) {
		t.Fatalf("err = %v, want ErrCredentialExists", err)
	}
}

func TestIdentityService_RegisterRequiresEmailAndPassword(t *testing.T) {
	svc := NewIdentityService(newStubCredentialRepo(), testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "", "pw", "Jane"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Register(context.Background(), "jane@example.com", "", "Jane"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestIdentityService_SignInIssuesToken(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := NewIdentityService(repo, testSecret, time.Hour)
	if _, err := svc.Register(context.Background(), "jane@example.com", "hunter22", "Jane"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, session, err := svc.SignIn(context.Background(), "jane@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if session.SubjectID == "" {
		t.Fatalf("session has no subject")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != session.SubjectID {
		t.Fatalf("sub claim = %v, want %q", claims["sub"], session.SubjectID)
	}
	if claims["email"] != "jane@example.com" || claims["name"] != "Jane" {
		t.Fatalf("claims = %v", claims)
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Fatalf("token has no expiry")
	}
}

func TestIdentityService_SignInRejectsBadPassword(t *testing.T) {
	repo := newStubCredentialRepo()
	svc := NewIdentityService(repo, testSecret, time.Hour)
	if _, err := svc.Register(context.Background(), "jane@example.com", "hunter22", "Jane"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.SignIn(context.Background(), "jane@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
