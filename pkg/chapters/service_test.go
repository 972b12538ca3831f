package chapters

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storyknot/storyknot/pkg/migrations"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestService_CreateChapter(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	chapter := &models.Chapter{
		Title:     "Spring Destiny",
		SortOrder: 1,
	}
	err := svc.CreateChapter(ctx, chapter)
	require.NoError(t, err)

	assert.NotEmpty(t, chapter.ID)
	assert.Equal(t, "spring-destiny", chapter.Slug)
	assert.NotZero(t, chapter.CreatedAt)
	assert.Equal(t, chapter.CreatedAt, chapter.UpdatedAt)
}

func TestService_CreateChapter_DuplicateSortOrder(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.CreateChapter(ctx, &models.Chapter{Title: "Spring Destiny", SortOrder: 1})
	require.NoError(t, err)

	err = svc.CreateChapter(ctx, &models.Chapter{Title: "Summer Adventures", SortOrder: 1})
	assert.EqualError(t, err, "A chapter with the same slug or sort order already exists.")
}

func TestService_ListChapters_Ordered(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	// Inserted out of order on purpose.
	require.NoError(t, svc.CreateChapter(ctx, &models.Chapter{Title: "Summer Adventures", SortOrder: 2}))
	require.NoError(t, svc.CreateChapter(ctx, &models.Chapter{Title: "Spring Destiny", SortOrder: 1}))
	require.NoError(t, svc.CreateChapter(ctx, &models.Chapter{Title: "Autumn Letters", SortOrder: 3}))

	chaptersList, err := svc.ListChapters(ctx)
	require.NoError(t, err)
	require.Len(t, chaptersList, 3)
	assert.Equal(t, "Spring Destiny", chaptersList[0].Title)
	assert.Equal(t, "Summer Adventures", chaptersList[1].Title)
	assert.Equal(t, "Autumn Letters", chaptersList[2].Title)
}

func TestService_RetrieveChapter_WithSections(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	chapter := &models.Chapter{Title: "Spring Destiny", SortOrder: 1}
	require.NoError(t, svc.CreateChapter(ctx, chapter))

	now := time.Now()
	for i, title := range []string{"The Coffee Shop Promise", "Under the Cherry Blossoms"} {
		section := &models.Section{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
			ChapterID: chapter.ID,
			Title:     title,
			Slug:      uuid.NewString(),
			SortOrder: 2 - i,
			TagsJSON:  `["spring"]`,
		}
		_, err := db.NewInsert().Model(section).Exec(ctx)
		require.NoError(t, err)
	}

	got, err := svc.RetrieveChapter(ctx, RetrieveChapterOptions{ID: &chapter.ID, WithSections: true})
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Under the Cherry Blossoms", got.Sections[0].Title)
	assert.Equal(t, []string{"spring"}, got.Sections[0].Tags)
}

func TestService_RetrieveChapter_BySlug(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	chapter := &models.Chapter{Title: "Spring Destiny", SortOrder: 1}
	require.NoError(t, svc.CreateChapter(ctx, chapter))

	slug := "spring-destiny"
	got, err := svc.RetrieveChapter(ctx, RetrieveChapterOptions{Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, chapter.ID, got.ID)
}

func TestService_RetrieveChapter_NotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	id := uuid.NewString()
	_, err := svc.RetrieveChapter(context.Background(), RetrieveChapterOptions{ID: &id})
	assert.EqualError(t, err, "Chapter not found.")
}

func TestService_UpdateChapter(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	chapter := &models.Chapter{Title: "Spring Destiny", SortOrder: 1}
	require.NoError(t, svc.CreateChapter(ctx, chapter))

	description := "The beginning of our story"
	chapter.Title = "Spring Destiny, Revisited"
	chapter.Description = &description
	err := svc.UpdateChapter(ctx, chapter, UpdateChapterOptions{Columns: []string{"title", "description"}})
	require.NoError(t, err)

	got, err := svc.RetrieveChapter(ctx, RetrieveChapterOptions{ID: &chapter.ID})
	require.NoError(t, err)
	assert.Equal(t, "Spring Destiny, Revisited", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, description, *got.Description)
	// Untracked columns don't change.
	assert.Equal(t, "spring-destiny", got.Slug)
}

func TestService_DeleteChapter_Cascades(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	chapter := &models.Chapter{Title: "Spring Destiny", SortOrder: 1}
	require.NoError(t, svc.CreateChapter(ctx, chapter))

	now := time.Now()
	section := &models.Section{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ChapterID: chapter.ID,
		Title:     "Under the Cherry Blossoms",
		Slug:      "under-the-cherry-blossoms",
		SortOrder: 1,
		TagsJSON:  "[]",
	}
	_, err := db.NewInsert().Model(section).Exec(ctx)
	require.NoError(t, err)

	page := &models.Page{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		UpdatedAt:  now,
		SectionID:  section.ID,
		Content:    "Page 1.",
		PageNumber: 1,
	}
	_, err = db.NewInsert().Model(page).Exec(ctx)
	require.NoError(t, err)

	// Tracking rows hang off the same hierarchy and must go with it.
	rp := &models.ReadingProgress{
		ID:         uuid.NewString(),
		SectionID:  section.ID,
		PageID:     &page.ID,
		PageNumber: 1,
		LastReadAt: now,
	}
	_, err = db.NewInsert().Model(rp).Exec(ctx)
	require.NoError(t, err)

	event := &models.AnalyticsEvent{
		ID:        uuid.NewString(),
		PageID:    page.ID,
		SectionID: section.ID,
		ChapterID: chapter.ID,
		EventType: models.EventTypePageViewStart,
		CreatedAt: now,
	}
	_, err = db.NewInsert().Model(event).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteChapter(ctx, chapter.ID))

	sectionCount, err := db.NewSelect().Model((*models.Section)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sectionCount)

	pageCount, err := db.NewSelect().Model((*models.Page)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pageCount)

	progressCount, err := db.NewSelect().Model((*models.ReadingProgress)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, progressCount)

	eventCount, err := db.NewSelect().Model((*models.AnalyticsEvent)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, eventCount)
}

func TestService_DeleteChapter_NotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	err := svc.DeleteChapter(context.Background(), uuid.NewString())
	assert.EqualError(t, err, "Chapter not found.")
}
