package sections

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

type RetrieveSectionOptions struct {
	ID   *string
	Slug *string

	// WithPages loads the section's pages ordered by page_number.
	WithPages bool
	// WithChapter loads the parent chapter.
	WithChapter bool
}

type ListSectionsOptions struct {
	ChapterID *string
}

type UpdateSectionOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

func (svc *Service) CreateSection(ctx context.Context, section *models.Section) error {
	exists, err := svc.db.NewSelect().
		Model((*models.Chapter)(nil)).
		Where("id = ?", section.ChapterID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Chapter")
	}

	now := time.Now()
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	if section.CreatedAt.IsZero() {
		section.CreatedAt = now
	}
	section.UpdatedAt = section.CreatedAt
	if section.Slug == "" {
		section.Slug = slug.Make(section.Title)
	}
	if err := section.MarshalTags(); err != nil {
		return err
	}

	_, err = svc.db.NewInsert().Model(section).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("A section with the same slug or sort order already exists in this chapter.")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) RetrieveSection(ctx context.Context, opts RetrieveSectionOptions) (*models.Section, error) {
	section := &models.Section{}

	q := svc.db.NewSelect().Model(section)
	if opts.WithPages {
		q = q.Relation("Pages", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("page_number ASC")
		})
	}
	if opts.WithChapter {
		q = q.Relation("Chapter")
	}
	if opts.ID != nil {
		q = q.Where("s.id = ?", *opts.ID)
	}
	if opts.Slug != nil {
		q = q.Where("s.slug = ?", *opts.Slug)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Section")
		}
		return nil, errors.WithStack(err)
	}

	if err := section.UnmarshalTags(); err != nil {
		return nil, err
	}

	return section, nil
}

// ListSections returns sections ordered by sort_order, optionally scoped to a
// chapter.
func (svc *Service) ListSections(ctx context.Context, opts ListSectionsOptions) ([]*models.Section, error) {
	var sectionsList []*models.Section

	q := svc.db.NewSelect().
		Model(&sectionsList).
		Order("sort_order ASC")
	if opts.ChapterID != nil {
		q = q.Where("s.chapter_id = ?", *opts.ChapterID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, section := range sectionsList {
		if err := section.UnmarshalTags(); err != nil {
			return nil, err
		}
	}

	return sectionsList, nil
}

func (svc *Service) UpdateSection(ctx context.Context, section *models.Section, opts UpdateSectionOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	section.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")
	if err := section.MarshalTags(); err != nil {
		return err
	}

	_, err := svc.db.NewUpdate().
		Model(section).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("A section with the same slug or sort order already exists in this chapter.")
		}
		return errors.WithStack(err)
	}
	return nil
}

// DeleteSection removes a section. Pages, reading progress, and analytics
// events under it go with it (ON DELETE CASCADE).
func (svc *Service) DeleteSection(ctx context.Context, sectionID string) error {
	result, err := svc.db.NewDelete().
		Model((*models.Section)(nil)).
		Where("id = ?", sectionID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Section")
	}
	return nil
}
