package pages

import (
	"github.com/labstack/echo/v4"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers page routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	pageService := NewService(db)

	h := &handler{
		pageService: pageService,
	}

	g.GET("/:id", h.retrieve)
	g.GET("/:id/segments", h.segments)
	g.POST("", h.create, authMiddleware.RequireAdmin)
	g.PATCH("/:id", h.update, authMiddleware.RequireAdmin)
	g.DELETE("/:id", h.deletePage, authMiddleware.RequireAdmin)
}
