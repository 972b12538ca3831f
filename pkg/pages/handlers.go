package pages

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/embeds"
	"github.com/storyknot/storyknot/pkg/models"
)

type handler struct {
	pageService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	page, err := h.pageService.RetrievePage(ctx, RetrievePageOptions{
		ID:          &id,
		WithSection: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, page))
}

// segments returns the page content split into renderable segments, with
// embed markers resolved to typed entries.
func (h *handler) segments(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	page, err := h.pageService.RetrievePage(ctx, RetrievePageOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]interface{}{
		"page_id":  page.ID,
		"segments": embeds.Parse(page.Content),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreatePagePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page := &models.Page{
		SectionID:  params.SectionID,
		Content:    params.Content,
		PageNumber: params.PageNumber,
	}

	if err := h.pageService.CreatePage(ctx, page); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, page))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	params := UpdatePagePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.pageService.RetrievePage(ctx, RetrievePageOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed
	opts := UpdatePageOptions{Columns: []string{}}

	if params.Content != nil && *params.Content != page.Content {
		page.Content = *params.Content
		opts.Columns = append(opts.Columns, "content")
	}
	if params.PageNumber != nil && *params.PageNumber != page.PageNumber {
		page.PageNumber = *params.PageNumber
		opts.Columns = append(opts.Columns, "page_number")
	}

	if err := h.pageService.UpdatePage(ctx, page, opts); err != nil {
		return errors.WithStack(err)
	}

	// Reload the model
	page, err = h.pageService.RetrievePage(ctx, RetrievePageOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) deletePage(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.pageService.DeletePage(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
