package sections

import (
	"github.com/labstack/echo/v4"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/pages"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers section routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	sectionService := NewService(db)
	pageService := pages.NewService(db)

	h := &handler{
		sectionService: sectionService,
		pageService:    pageService,
	}

	g.GET("/:id", h.retrieve)
	g.GET("/:id/pages", h.sectionPages)
	g.POST("", h.create, authMiddleware.RequireAdmin)
	g.PATCH("/:id", h.update, authMiddleware.RequireAdmin)
	g.DELETE("/:id", h.deleteSection, authMiddleware.RequireAdmin)
}
