package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/storyknot/storyknot/pkg/analytics"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/binder"
	"github.com/storyknot/storyknot/pkg/chapters"
	"github.com/storyknot/storyknot/pkg/config"
	"github.com/storyknot/storyknot/pkg/errcodes"
	"github.com/storyknot/storyknot/pkg/pages"
	"github.com/storyknot/storyknot/pkg/progress"
	"github.com/storyknot/storyknot/pkg/sections"
	"github.com/storyknot/storyknot/pkg/testutils"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(corsMiddleware(cfg))

	health.RegisterRoutes(e)

	// Register auth routes and get the auth service
	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	registerReaderRoutes(e, db, authMiddleware)

	// Test-only fixture endpoints
	if cfg.IsTest() {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// corsMiddleware restricts cross-origin requests to the configured frontend
// and allows cookies through; session auth is cookie-based.
func corsMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	if cfg.FrontendURL == "" {
		return middleware.CORS()
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	})
}

// registerReaderRoutes registers the content and tracking routes. Reads are
// public; sessions are picked up when present so progress and analytics land
// on the right identity, and content mutation stays admin-only.
func registerReaderRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	chaptersGroup := e.Group("/chapters")
	chaptersGroup.Use(authMiddleware.AuthenticateOptional)
	chapters.RegisterRoutesWithGroup(chaptersGroup, db, authMiddleware)

	sectionsGroup := e.Group("/sections")
	sectionsGroup.Use(authMiddleware.AuthenticateOptional)
	sections.RegisterRoutesWithGroup(sectionsGroup, db, authMiddleware)

	pagesGroup := e.Group("/pages")
	pagesGroup.Use(authMiddleware.AuthenticateOptional)
	pages.RegisterRoutesWithGroup(pagesGroup, db, authMiddleware)

	progressGroup := e.Group("/progress")
	progressGroup.Use(authMiddleware.AuthenticateOptional)
	progress.RegisterRoutesWithGroup(progressGroup, db)

	analyticsGroup := e.Group("/analytics")
	analyticsGroup.Use(authMiddleware.AuthenticateOptional)
	analytics.RegisterRoutesWithGroup(analyticsGroup, db, authMiddleware)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
