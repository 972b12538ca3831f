package pages

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

type RetrievePageOptions struct {
	ID *string

	// WithSection loads the parent section (and its chapter).
	WithSection bool
}

type ListPagesOptions struct {
	SectionID *string
}

type UpdatePageOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

func (svc *Service) CreatePage(ctx context.Context, page *models.Page) error {
	exists, err := svc.db.NewSelect().
		Model((*models.Section)(nil)).
		Where("id = ?", page.SectionID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Section")
	}

	now := time.Now()
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = page.CreatedAt

	_, err = svc.db.NewInsert().Model(page).Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrievePage(ctx context.Context, opts RetrievePageOptions) (*models.Page, error) {
	page := &models.Page{}

	q := svc.db.NewSelect().Model(page)
	if opts.WithSection {
		q = q.Relation("Section").Relation("Section.Chapter")
	}
	if opts.ID != nil {
		q = q.Where("p.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Page")
		}
		return nil, errors.WithStack(err)
	}

	return page, nil
}

// ListPages returns pages ordered by page_number, optionally scoped to a
// section.
func (svc *Service) ListPages(ctx context.Context, opts ListPagesOptions) ([]*models.Page, error) {
	var pagesList []*models.Page

	q := svc.db.NewSelect().
		Model(&pagesList).
		Order("page_number ASC")
	if opts.SectionID != nil {
		q = q.Where("p.section_id = ?", *opts.SectionID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return pagesList, nil
}

func (svc *Service) UpdatePage(ctx context.Context, page *models.Page, opts UpdatePageOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	page.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.NewUpdate().
		Model(page).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// DeletePage removes a page. Reading progress rows pointing at it go with
// it (ON DELETE CASCADE).
func (svc *Service) DeletePage(ctx context.Context, pageID string) error {
	result, err := svc.db.NewDelete().
		Model((*models.Page)(nil)).
		Where("id = ?", pageID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Page")
	}
	return nil
}
