package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// IdentityHandler exposes the local credentials identity provider.
type IdentityHandler struct {
	identity ports.IdentityService
}

func NewIdentityHandler(identity ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	SubjectID string `json:"subject_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

type identityResponse struct {
	Token   string           `json:"token,omitempty"`
	Session *sessionResponse `json:"session,omitempty"`
}

// Register creates a new identity account. No profile is created here: the
// first resolve after sign-in routes the identity through profile setup.
//
// @Summary      Register a new account
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/identity/register [post]
func (h *IdentityHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.identity.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, identityResponse{Session: toSessionResponse(session)})
}

// Login authenticates a credential and returns a session token.
//
// @Summary      Sign in with credentials
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/identity/login [post]
func (h *IdentityHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, session, err := h.identity.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{Token: token, Session: toSessionResponse(session)})
}

func toSessionResponse(s *domain.Session) *sessionResponse {
	if s == nil {
		return nil
	}
	return &sessionResponse{SubjectID: s.SubjectID, Email: s.Email, Name: s.Name}
}
