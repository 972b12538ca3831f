package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/errcodes"
	"github.com/storyknot/storyknot/pkg/models"
)

type handler struct {
	analyticsService *Service
}

func (h *handler) ingest(c echo.Context) error {
	ctx := c.Request().Context()

	params := IngestEventPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if params.EventType == models.EventTypeMilestone && params.Milestone == nil {
		return errcodes.ValidationError("milestone is required for milestone events.")
	}

	identity := auth.ResolveIdentity(c, params.UserID)

	event, err := h.analyticsService.IngestEvent(ctx, identity, IngestEventOptions{
		PageID:          params.PageID,
		EventType:       params.EventType,
		Milestone:       params.Milestone,
		DurationSeconds: params.DurationSeconds,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, event))
}

func (h *handler) summary(c echo.Context) error {
	ctx := c.Request().Context()

	rows, err := h.analyticsService.Summary(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, rows))
}

func (h *handler) listEvents(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListEventsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	events, err := h.analyticsService.ListEvents(ctx, ListEventsOptions{
		PageID:    params.PageID,
		SectionID: params.SectionID,
		ChapterID: params.ChapterID,
		EventType: params.EventType,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, events))
}
