package testutils

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createUserRequest is the request body for creating a test user.
type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// createUserResponse is the response body for creating a test user.
type createUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// createUser creates a test user.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}
	if req.Role == "" {
		req.Role = models.RoleAdmin
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}

	_, err = h.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	return c.JSON(http.StatusCreated, createUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// deletedResponse is the response body for the delete-all endpoints.
type deletedResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllUsers deletes all users from the database.
// DELETE /test/users.
func (h *handler) deleteAllUsers(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.User)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete users")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deletedResponse{Deleted: int(deleted)})
}

// createContentRequest is the request body for creating a content fixture.
type createContentRequest struct {
	ChapterTitle string `json:"chapter_title" validate:"required"`
	SectionTitle string `json:"section_title" validate:"required"`
	PageCount    int    `json:"page_count"`
	SortOrder    int    `json:"sort_order"`
}

// createContentResponse is the response body for creating a content fixture.
type createContentResponse struct {
	ChapterID string   `json:"chapter_id"`
	SectionID string   `json:"section_id"`
	PageIDs   []string `json:"page_ids"`
}

// createContent creates a chapter with one section and a run of pages.
// POST /test/content.
func (h *handler) createContent(c echo.Context) error {
	ctx := c.Request().Context()

	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.ChapterTitle == "" || req.SectionTitle == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Chapter and section titles are required")
	}
	if req.PageCount <= 0 {
		req.PageCount = 4
	}
	if req.SortOrder <= 0 {
		req.SortOrder = 1
	}

	now := time.Now()

	chapter := &models.Chapter{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     req.ChapterTitle,
		Slug:      slug.Make(req.ChapterTitle) + "-" + uuid.NewString()[:8],
		SortOrder: req.SortOrder,
	}
	if _, err := h.db.NewInsert().Model(chapter).Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to create chapter")
	}

	section := &models.Section{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ChapterID: chapter.ID,
		Title:     req.SectionTitle,
		Slug:      slug.Make(req.SectionTitle),
		SortOrder: 1,
		TagsJSON:  "[]",
	}
	if _, err := h.db.NewInsert().Model(section).Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to create section")
	}

	pageIDs := make([]string, 0, req.PageCount)
	for i := 1; i <= req.PageCount; i++ {
		page := &models.Page{
			ID:         uuid.NewString(),
			CreatedAt:  now,
			UpdatedAt:  now,
			SectionID:  section.ID,
			Content:    fmt.Sprintf("Test page %d.", i),
			PageNumber: i,
		}
		if _, err := h.db.NewInsert().Model(page).Exec(ctx); err != nil {
			return errors.Wrap(err, "failed to create page")
		}
		pageIDs = append(pageIDs, page.ID)
	}

	return c.JSON(http.StatusCreated, createContentResponse{
		ChapterID: chapter.ID,
		SectionID: section.ID,
		PageIDs:   pageIDs,
	})
}

// deleteAllContent deletes all chapters; sections, pages, progress, and
// events cascade away with them.
// DELETE /test/content.
func (h *handler) deleteAllContent(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.Chapter)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete chapters")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deletedResponse{Deleted: int(deleted)})
}

// deleteAllProgress deletes all reading progress rows.
// DELETE /test/progress.
func (h *handler) deleteAllProgress(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.ReadingProgress)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete reading progress")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deletedResponse{Deleted: int(deleted)})
}

// deleteAllEvents deletes all analytics events.
// DELETE /test/analytics.
func (h *handler) deleteAllEvents(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.AnalyticsEvent)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete analytics events")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deletedResponse{Deleted: int(deleted)})
}
