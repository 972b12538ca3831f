package sections

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/storyknot/storyknot/pkg/pages"
)

type handler struct {
	sectionService *Service
	pageService    *pages.Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	section, err := h.sectionService.RetrieveSection(ctx, RetrieveSectionOptions{
		ID:          &id,
		WithChapter: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, section))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateSectionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	section := &models.Section{
		ChapterID: params.ChapterID,
		Title:     params.Title,
		Slug:      params.Slug,
		Mood:      params.Mood,
		Tags:      params.Tags,
		Thumbnail: params.Thumbnail,
		SortOrder: params.SortOrder,
	}

	if err := h.sectionService.CreateSection(ctx, section); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, section))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	params := UpdateSectionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	section, err := h.sectionService.RetrieveSection(ctx, RetrieveSectionOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed
	opts := UpdateSectionOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != section.Title {
		section.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Slug != nil && *params.Slug != section.Slug {
		section.Slug = *params.Slug
		opts.Columns = append(opts.Columns, "slug")
	}
	if params.Mood != nil {
		section.Mood = params.Mood
		opts.Columns = append(opts.Columns, "mood")
	}
	if params.Tags != nil {
		section.Tags = params.Tags
		opts.Columns = append(opts.Columns, "tags")
	}
	if params.Thumbnail != nil {
		section.Thumbnail = params.Thumbnail
		opts.Columns = append(opts.Columns, "thumbnail")
	}
	if params.SortOrder != nil && *params.SortOrder != section.SortOrder {
		section.SortOrder = *params.SortOrder
		opts.Columns = append(opts.Columns, "sort_order")
	}

	if err := h.sectionService.UpdateSection(ctx, section, opts); err != nil {
		return errors.WithStack(err)
	}

	// Reload the model
	section, err = h.sectionService.RetrieveSection(ctx, RetrieveSectionOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, section))
}

func (h *handler) deleteSection(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.sectionService.DeleteSection(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) sectionPages(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := h.sectionService.RetrieveSection(ctx, RetrieveSectionOptions{
		ID: &id,
	}); err != nil {
		return errors.WithStack(err)
	}

	pagesList, err := h.pageService.ListPages(ctx, pages.ListPagesOptions{
		SectionID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, pagesList))
}
