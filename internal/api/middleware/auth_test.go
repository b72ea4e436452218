package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestAuth_InjectsSessionClaims(t *testing.T) {
	e := echo.New()
	token := signToken(t, "secret", jwt.MapClaims{
		"sub":     "auth0|u_123",
		"email":   "jane@example.com",
		"name":    "jane",
		"picture": "https://cdn.example/jane.png",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if got := c.Get("subject"); got != "auth0|u_123" {
		t.Fatalf("subject = %v", got)
	}
	if got := c.Get("email"); got != "jane@example.com" {
		t.Fatalf("email = %v", got)
	}
	if got := c.Get("picture"); got != "https://cdn.example/jane.png" {
		t.Fatalf("picture = %v", got)
	}
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	e := echo.New()
	handler := Auth("secret")(func(c echo.Context) error {
		t.Fatalf("next handler must not run")
		return nil
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := handler(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("err = %v, want 401", err)
			}
		})
	}
}

func TestAuth_RejectsWrongSecret(t *testing.T) {
	e := echo.New()
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "auth0|u_123", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth("secret")(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestAuth_RejectsExpiredToken(t *testing.T) {
	e := echo.New()
	token := signToken(t, "secret", jwt.MapClaims{"sub": "auth0|u_123", "exp": time.Now().Add(-time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth("secret")(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}
