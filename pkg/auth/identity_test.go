package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/stretchr/testify/assert"
)

func newContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/progress", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestResolveIdentity(t *testing.T) {
	t.Parallel()

	t.Run("no session and no explicit id is anonymous", func(t *testing.T) {
		t.Parallel()

		identity := ResolveIdentity(newContext(), nil)
		assert.True(t, identity.IsAnonymous())
		assert.Nil(t, identity.UserID())
	})

	t.Run("session user wins", func(t *testing.T) {
		t.Parallel()

		c := newContext()
		c.Set("user", &models.User{ID: "session-user", Role: models.RoleReader})

		explicit := "body-user"
		identity := ResolveIdentity(c, &explicit)
		assert.False(t, identity.IsAnonymous())
		assert.Equal(t, "session-user", *identity.UserID())
	})

	t.Run("explicit id used without a session", func(t *testing.T) {
		t.Parallel()

		explicit := "body-user"
		identity := ResolveIdentity(newContext(), &explicit)
		assert.False(t, identity.IsAnonymous())
		assert.Equal(t, "body-user", *identity.UserID())
	})

	t.Run("empty explicit id stays anonymous", func(t *testing.T) {
		t.Parallel()

		explicit := ""
		identity := ResolveIdentity(newContext(), &explicit)
		assert.True(t, identity.IsAnonymous())
	})
}
