package progress

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers progress routes on a pre-configured
// group. The group carries optional authentication: anonymous readers share
// one trail, signed-in readers get their own.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	progressService := NewService(db)

	h := &handler{
		progressService: progressService,
	}

	g.POST("", h.upsert)
	g.GET("", h.list)
	g.GET("/last", h.lastRead)
}
