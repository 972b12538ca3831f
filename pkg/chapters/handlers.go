package chapters

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/storyknot/storyknot/pkg/sections"
)

type handler struct {
	chapterService *Service
	sectionService *sections.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	chaptersList, err := h.chapterService.ListChapters(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, chaptersList))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	chapter, err := h.chapterService.RetrieveChapter(ctx, RetrieveChapterOptions{
		ID:           &id,
		WithSections: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, chapter))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateChapterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	chapter := &models.Chapter{
		Title:       params.Title,
		Slug:        params.Slug,
		Description: params.Description,
		CoverImage:  params.CoverImage,
		SortOrder:   params.SortOrder,
	}

	if err := h.chapterService.CreateChapter(ctx, chapter); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, chapter))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	params := UpdateChapterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	chapter, err := h.chapterService.RetrieveChapter(ctx, RetrieveChapterOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed
	opts := UpdateChapterOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != chapter.Title {
		chapter.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Slug != nil && *params.Slug != chapter.Slug {
		chapter.Slug = *params.Slug
		opts.Columns = append(opts.Columns, "slug")
	}
	if params.Description != nil {
		chapter.Description = params.Description
		opts.Columns = append(opts.Columns, "description")
	}
	if params.CoverImage != nil {
		chapter.CoverImage = params.CoverImage
		opts.Columns = append(opts.Columns, "cover_image")
	}
	if params.SortOrder != nil && *params.SortOrder != chapter.SortOrder {
		chapter.SortOrder = *params.SortOrder
		opts.Columns = append(opts.Columns, "sort_order")
	}

	if err := h.chapterService.UpdateChapter(ctx, chapter, opts); err != nil {
		return errors.WithStack(err)
	}

	// Reload the model
	chapter, err = h.chapterService.RetrieveChapter(ctx, RetrieveChapterOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, chapter))
}

func (h *handler) deleteChapter(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.chapterService.DeleteChapter(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) chapterSections(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	// Make sure the chapter exists so a bad id is a 404, not an empty list.
	if _, err := h.chapterService.RetrieveChapter(ctx, RetrieveChapterOptions{
		ID: &id,
	}); err != nil {
		return errors.WithStack(err)
	}

	sectionsList, err := h.sectionService.ListSections(ctx, sections.ListSectionsOptions{
		ChapterID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, sectionsList))
}
