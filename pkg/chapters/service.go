package chapters

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/storyknot/storyknot/pkg/errcodes"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveChapterOptions struct {
	ID   *string
	Slug *string

	// WithSections loads the chapter's sections ordered by sort_order.
	WithSections bool
}

type UpdateChapterOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

func (svc *Service) CreateChapter(ctx context.Context, chapter *models.Chapter) error {
	now := time.Now()
	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = now
	}
	chapter.UpdatedAt = chapter.CreatedAt
	if chapter.Slug == "" {
		chapter.Slug = slug.Make(chapter.Title)
	}

	_, err := svc.db.NewInsert().Model(chapter).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("A chapter with the same slug or sort order already exists.")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) RetrieveChapter(ctx context.Context, opts RetrieveChapterOptions) (*models.Chapter, error) {
	chapter := &models.Chapter{}

	q := svc.db.NewSelect().Model(chapter)
	if opts.WithSections {
		q = q.Relation("Sections", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("sort_order ASC")
		})
	}
	if opts.ID != nil {
		q = q.Where("c.id = ?", *opts.ID)
	}
	if opts.Slug != nil {
		q = q.Where("c.slug = ?", *opts.Slug)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Chapter")
		}
		return nil, errors.WithStack(err)
	}

	for _, section := range chapter.Sections {
		if err := section.UnmarshalTags(); err != nil {
			return nil, err
		}
	}

	return chapter, nil
}

// ListChapters returns all chapters ordered by sort_order.
func (svc *Service) ListChapters(ctx context.Context) ([]*models.Chapter, error) {
	var chapters []*models.Chapter
	err := svc.db.NewSelect().
		Model(&chapters).
		Order("sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return chapters, nil
}

func (svc *Service) UpdateChapter(ctx context.Context, chapter *models.Chapter, opts UpdateChapterOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	chapter.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.NewUpdate().
		Model(chapter).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("A chapter with the same slug or sort order already exists.")
		}
		return errors.WithStack(err)
	}
	return nil
}

// DeleteChapter removes a chapter. Sections, pages, reading progress, and
// analytics events under it go with it (ON DELETE CASCADE).
func (svc *Service) DeleteChapter(ctx context.Context, chapterID string) error {
	result, err := svc.db.NewDelete().
		Model((*models.Chapter)(nil)).
		Where("id = ?", chapterID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Chapter")
	}
	return nil
}
