package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// ResolverRegistry is the slice of the resolver registry the handler uses.
type ResolverRegistry interface {
	For(subjectID string) ports.SessionResolver
	SignOut(subjectID string)
}

// SessionHandler exposes the Session Resolver over HTTP.
type SessionHandler struct {
	registry ResolverRegistry
	hints    ports.RoleHintStore
}

func NewSessionHandler(registry ResolverRegistry, hints ports.RoleHintStore) *SessionHandler {
	return &SessionHandler{registry: registry, hints: hints}
}

// Resolve handles GET /v1/session — re-derives the resolution state for the
// authenticated subject.
//
// @Summary      Resolve the current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  resolutionStateResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Resolve(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	state := h.registry.For(session.SubjectID).Resolve(c.Request().Context(), session)
	return c.JSON(http.StatusOK, toStateResponse(state))
}

// CompleteSetup handles POST /v1/session/profile — creates the profile for a
// pending identity.
//
// @Summary      Complete profile setup
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileSetupRequest  true  "Display name and role"
// @Success      201   {object}  resolutionStateResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/profile [post]
func (h *SessionHandler) CompleteSetup(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	var req profileSetupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	resolver := h.registry.For(session.SubjectID)
	if resolver.Current().Phase == domain.PhaseUnresolved {
		// First touch after a restart: derive the pending identity before
		// accepting the setup submission.
		resolver.Resolve(c.Request().Context(), session)
	}

	state, err := resolver.CompleteProfileSetup(c.Request().Context(), req.Name, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidRole) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, toStateResponse(state))
}

// RoleHint handles PUT /v1/session/role-hint — records the visitor's
// preferred role so it survives the sign-up redirect.
//
// @Summary      Record a preferred-role hint
// @Tags         session
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  roleHintRequest  true  "Preferred role"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/session/role-hint [put]
func (h *SessionHandler) RoleHint(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	var req roleHintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.hints.Put(c.Request().Context(), session.SubjectID, req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SignOut handles DELETE /v1/session.
//
// @Summary      Sign out
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [delete]
func (h *SessionHandler) SignOut(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	h.registry.SignOut(session.SubjectID)
	return c.NoContent(http.StatusNoContent)
}
