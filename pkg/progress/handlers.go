package progress

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/errcodes"
	"github.com/storyknot/storyknot/pkg/models"
)

type handler struct {
	progressService *Service
}

func (h *handler) upsert(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpsertProgressPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	identity := auth.ResolveIdentity(c, params.UserID)

	row, err := h.progressService.UpsertProgress(ctx, identity, UpsertProgressOptions{
		SectionID:  params.SectionID,
		PageID:     params.PageID,
		PageNumber: params.PageNumber,
		Completed:  params.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	crossed, err := h.progressService.NewlyCrossedMilestones(ctx, identity, row.SectionID, row.PageNumber)
	if err != nil {
		return errors.WithStack(err)
	}

	response := struct {
		*models.ReadingProgress
		NewMilestones []float64 `json:"new_milestones"`
	}{row, crossed}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListProgressQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	identity := auth.ResolveIdentity(c, params.UserID)

	rows, err := h.progressService.ListProgress(ctx, identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, rows))
}

// lastRead returns the identity's most recent position, or a JSON null when
// they haven't read anything yet. A fresh reader isn't an error.
func (h *handler) lastRead(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListProgressQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	identity := auth.ResolveIdentity(c, params.UserID)

	row, err := h.progressService.LastRead(ctx, identity)
	if err != nil {
		var ecErr *errcodes.Error
		if errors.As(err, &ecErr) && ecErr.HTTPCode == http.StatusNotFound {
			return errors.WithStack(c.JSON(http.StatusOK, nil))
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, row))
}
