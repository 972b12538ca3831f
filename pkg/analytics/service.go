package analytics

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/errcodes"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/uptrace/bun"
)

type IngestEventOptions struct {
	PageID          string
	EventType       string
	Milestone       *float64
	DurationSeconds float64
}

type ListEventsOptions struct {
	PageID    *string
	SectionID *string
	ChapterID *string
	EventType *string
	Limit     int
	Offset    int
}

// SummaryRow is per-page aggregate engagement.
type SummaryRow struct {
	PageID        string    `bun:"page_id" json:"page_id"`
	PageNumber    int       `bun:"page_number" json:"page_number"`
	SectionTitle  string    `bun:"section_title" json:"section_title"`
	ChapterTitle  string    `bun:"chapter_title" json:"chapter_title"`
	UniqueViewers int       `bun:"unique_viewers" json:"unique_viewers"`
	TotalViews    int       `bun:"total_views" json:"total_views"`
	AvgDuration   float64   `bun:"avg_duration_seconds" json:"avg_duration_seconds"`
	LastAccessed  time.Time `bun:"last_accessed" json:"last_accessed"`
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// IngestEvent appends one interaction event. The section and chapter ids are
// denormalized from the page at write time so the summary query doesn't lose
// events if content is later renumbered.
func (svc *Service) IngestEvent(ctx context.Context, identity models.Identity, opts IngestEventOptions) (*models.AnalyticsEvent, error) {
	page := &models.Page{}
	err := svc.db.NewSelect().
		Model(page).
		Relation("Section").
		Where("p.id = ?", opts.PageID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Page")
		}
		return nil, errors.WithStack(err)
	}

	event := &models.AnalyticsEvent{
		ID:              uuid.NewString(),
		UserID:          identity.UserID(),
		PageID:          page.ID,
		SectionID:       page.SectionID,
		ChapterID:       page.Section.ChapterID,
		EventType:       opts.EventType,
		Milestone:       opts.Milestone,
		DurationSeconds: opts.DurationSeconds,
		CreatedAt:       time.Now(),
	}

	_, err = svc.db.NewInsert().Model(event).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return event, nil
}

// Summary aggregates engagement per page in reading order. Unique viewers
// only counts signed-in readers; the anonymous trail has no user_id to count.
func (svc *Service) Summary(ctx context.Context) ([]SummaryRow, error) {
	rows := []SummaryRow{}

	err := svc.db.NewSelect().
		Model((*models.AnalyticsEvent)(nil)).
		ColumnExpr("ae.page_id AS page_id").
		ColumnExpr("p.page_number AS page_number").
		ColumnExpr("s.title AS section_title").
		ColumnExpr("c.title AS chapter_title").
		ColumnExpr("COUNT(DISTINCT ae.user_id) AS unique_viewers").
		ColumnExpr("COUNT(*) AS total_views").
		ColumnExpr("COALESCE(AVG(NULLIF(ae.duration_seconds, 0)), 0) AS avg_duration_seconds").
		ColumnExpr("MAX(ae.created_at) AS last_accessed").
		Join("JOIN pages AS p ON p.id = ae.page_id").
		Join("JOIN sections AS s ON s.id = ae.section_id").
		Join("JOIN chapters AS c ON c.id = ae.chapter_id").
		GroupExpr("ae.page_id, p.page_number, s.title, c.title").
		OrderExpr("c.sort_order ASC, s.sort_order ASC, p.page_number ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rows, nil
}

// ListEvents returns raw events, newest first.
func (svc *Service) ListEvents(ctx context.Context, opts ListEventsOptions) ([]*models.AnalyticsEvent, error) {
	var events []*models.AnalyticsEvent

	q := svc.db.NewSelect().
		Model(&events).
		Order("created_at DESC")
	if opts.PageID != nil {
		q = q.Where("ae.page_id = ?", *opts.PageID)
	}
	if opts.SectionID != nil {
		q = q.Where("ae.section_id = ?", *opts.SectionID)
	}
	if opts.ChapterID != nil {
		q = q.Where("ae.chapter_id = ?", *opts.ChapterID)
	}
	if opts.EventType != nil {
		q = q.Where("ae.event_type = ?", *opts.EventType)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return events, nil
}
