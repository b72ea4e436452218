package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

// sessionFromContext rebuilds the provider session from the claims injected
// by the Auth middleware. The subject claim proves the middleware ran; a
// request without it never reaches a service call.
func sessionFromContext(c echo.Context) (*domain.Session, error) {
	subject, _ := c.Get("subject").(string)
	if subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	fullName, _ := c.Get("full_name").(string)
	name, _ := c.Get("name").(string)
	avatar, _ := c.Get("avatar").(string)
	picture, _ := c.Get("picture").(string)

	return &domain.Session{
		SubjectID:  subject,
		Email:      email,
		FullName:   fullName,
		Name:       name,
		AvatarURL:  avatar,
		PictureURL: picture,
	}, nil
}
