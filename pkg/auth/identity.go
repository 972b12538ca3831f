package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/storyknot/storyknot/pkg/models"
)

// ResolveIdentity resolves a request to a progress-tracking identity. An
// authenticated session always wins; otherwise an explicit identity field
// from the request is honored (for clients that hold a user id but no
// session cookie), and everything else is the shared anonymous trail.
func ResolveIdentity(c echo.Context, explicit *string) models.Identity {
	if user, ok := c.Get("user").(*models.User); ok {
		return user.Identity()
	}
	if explicit != nil && *explicit != "" {
		return models.UserIdentity(*explicit)
	}
	return models.AnonymousIdentity()
}
