package progress

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/errcodes"
	"github.com/storyknot/storyknot/pkg/milestones"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/uptrace/bun"
)

// UpsertProgressOptions carries the client-reported position. LastReadAt is
// always assigned server-side.
type UpsertProgressOptions struct {
	SectionID  string
	PageID     *string
	PageNumber int
	Completed  bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// identityFilter scopes a query to one identity's rows. The anonymous trail
// is the set of rows with a null user_id.
func identityFilter(q *bun.SelectQuery, identity models.Identity) *bun.SelectQuery {
	if identity.IsAnonymous() {
		return q.Where("rp.user_id IS NULL")
	}
	return q.Where("rp.user_id = ?", *identity.UserID())
}

// UpsertProgress records the identity's position in a section as a single
// atomic statement, so concurrent reports for the same (identity, section)
// can never produce two rows. The completed flag is sticky: once a row is
// completed it stays completed even if a later report says otherwise,
// because re-reading a section doesn't un-finish it.
func (svc *Service) UpsertProgress(ctx context.Context, identity models.Identity, opts UpsertProgressOptions) (*models.ReadingProgress, error) {
	exists, err := svc.db.NewSelect().
		Model((*models.Section)(nil)).
		Where("id = ?", opts.SectionID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !exists {
		return nil, errcodes.NotFound("Section")
	}

	if opts.PageID != nil {
		exists, err = svc.db.NewSelect().
			Model((*models.Page)(nil)).
			Where("id = ?", *opts.PageID).
			Where("section_id = ?", opts.SectionID).
			Exists(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !exists {
			return nil, errcodes.NotFound("Page")
		}
	}

	if !identity.IsAnonymous() {
		exists, err = svc.db.NewSelect().
			Model((*models.User)(nil)).
			Where("id = ?", *identity.UserID()).
			Exists(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !exists {
			return nil, errcodes.NotFound("User")
		}
	}

	row := &models.ReadingProgress{
		ID:         uuid.NewString(),
		UserID:     identity.UserID(),
		SectionID:  opts.SectionID,
		PageID:     opts.PageID,
		PageNumber: opts.PageNumber,
		Completed:  opts.Completed,
		LastReadAt: time.Now(),
	}

	// The conflict target matches ux_reading_progress_identity_section, the
	// expression index that makes the anonymous trail unique per section.
	_, err = svc.db.NewInsert().
		Model(row).
		On("CONFLICT (COALESCE(user_id, ''), section_id) DO UPDATE").
		Set("page_id = EXCLUDED.page_id").
		Set("page_number = EXCLUDED.page_number").
		Set("completed = rp.completed OR EXCLUDED.completed").
		Set("last_read_at = EXCLUDED.last_read_at").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Re-read so callers see the merged row (the kept id, the sticky
	// completed flag) rather than the candidate we proposed.
	return svc.RetrieveProgress(ctx, identity, opts.SectionID)
}

// NewlyCrossedMilestones returns the milestone thresholds the identity has
// reached in a section but hasn't emitted milestone events for yet. The
// caller (the reader client) is expected to emit one analytics event per
// returned threshold, which is what makes the next call come back empty.
func (svc *Service) NewlyCrossedMilestones(ctx context.Context, identity models.Identity, sectionID string, pageNumber int) ([]float64, error) {
	totalPages, err := svc.db.NewSelect().
		Model((*models.Page)(nil)).
		Where("section_id = ?", sectionID).
		Count(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var reported []float64
	q := svc.db.NewSelect().
		Model((*models.AnalyticsEvent)(nil)).
		ColumnExpr("DISTINCT ae.milestone").
		Where("ae.section_id = ?", sectionID).
		Where("ae.event_type = ?", models.EventTypeMilestone).
		Where("ae.milestone IS NOT NULL")
	if identity.IsAnonymous() {
		q = q.Where("ae.user_id IS NULL")
	} else {
		q = q.Where("ae.user_id = ?", *identity.UserID())
	}
	err = q.Scan(ctx, &reported)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// The updated reported set isn't persisted here; it materializes as
	// milestone rows in analytics_events once the client emits an event per
	// returned threshold.
	ratio := milestones.Ratio(pageNumber, totalPages)
	crossed, _ := milestones.Evaluate(ratio, milestones.DefaultThresholds, reported)
	return crossed, nil
}

// RetrieveProgress returns the identity's row for one section.
func (svc *Service) RetrieveProgress(ctx context.Context, identity models.Identity, sectionID string) (*models.ReadingProgress, error) {
	row := &models.ReadingProgress{}

	q := svc.db.NewSelect().
		Model(row).
		Where("rp.section_id = ?", sectionID)
	q = identityFilter(q, identity)

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Reading progress")
		}
		return nil, errors.WithStack(err)
	}
	return row, nil
}

// ListProgress returns all of the identity's rows, most recently read first.
func (svc *Service) ListProgress(ctx context.Context, identity models.Identity) ([]*models.ReadingProgress, error) {
	var rows []*models.ReadingProgress

	q := svc.db.NewSelect().
		Model(&rows).
		Order("last_read_at DESC")
	q = identityFilter(q, identity)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rows, nil
}

// LastRead returns the identity's most recently touched row, with its
// section and chapter loaded so the reader can resume in place.
func (svc *Service) LastRead(ctx context.Context, identity models.Identity) (*models.ReadingProgress, error) {
	row := &models.ReadingProgress{}

	q := svc.db.NewSelect().
		Model(row).
		Relation("Section").
		Relation("Section.Chapter").
		Order("last_read_at DESC").
		Limit(1)
	q = identityFilter(q, identity)

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Reading progress")
		}
		return nil, errors.WithStack(err)
	}

	if row.Section != nil {
		if err := row.Section.UnmarshalTags(); err != nil {
			return nil, err
		}
	}

	return row, nil
}
