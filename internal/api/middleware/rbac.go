package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleSource reports the resolved profile role for a subject, when one
// exists. Implemented by the resolver registry.
type RoleSource interface {
	RoleFor(subjectID string) (role string, resolved bool)
}

// RequireRole gates a route on the caller's resolved profile role. The
// session token carries no role claim on purpose: the profile row is the
// only source of truth for roles, so the check consults resolution state.
func RequireRole(roles RoleSource, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := c.Get("subject").(string)
			if subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			role, resolved := roles.RoleFor(subject)
			if !resolved {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "profile setup required"})
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
