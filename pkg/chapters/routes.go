package chapters

import (
	"github.com/labstack/echo/v4"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/sections"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers chapter routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	chapterService := NewService(db)
	sectionService := sections.NewService(db)

	h := &handler{
		chapterService: chapterService,
		sectionService: sectionService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/sections", h.chapterSections)
	g.POST("", h.create, authMiddleware.RequireAdmin)
	g.PATCH("/:id", h.update, authMiddleware.RequireAdmin)
	g.DELETE("/:id", h.deleteChapter, authMiddleware.RequireAdmin)
}
