package analytics

import (
	"github.com/labstack/echo/v4"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers analytics routes on a pre-configured
// group. Ingest is open to readers; the aggregate views are admin-only.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	analyticsService := NewService(db)

	h := &handler{
		analyticsService: analyticsService,
	}

	g.POST("/events", h.ingest)
	g.GET("/summary", h.summary, authMiddleware.RequireAdmin)
	g.GET("/events", h.listEvents, authMiddleware.RequireAdmin)
}
