package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE users (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				username TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'reader'
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_users_username ON users (username COLLATE NOCASE)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE chapters (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				title TEXT NOT NULL,
				slug TEXT NOT NULL,
				description TEXT,
				cover_image TEXT,
				sort_order INTEGER NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_chapters_sort_order ON chapters (sort_order)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_chapters_slug ON chapters (slug)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE sections (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				chapter_id TEXT NOT NULL REFERENCES chapters (id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				slug TEXT NOT NULL,
				mood TEXT,
				tags TEXT NOT NULL DEFAULT '[]',
				thumbnail TEXT,
				sort_order INTEGER NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_sections_chapter_id ON sections (chapter_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_sections_chapter_id_sort_order ON sections (chapter_id, sort_order)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_sections_chapter_id_slug ON sections (chapter_id, slug)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE pages (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				section_id TEXT NOT NULL REFERENCES sections (id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				page_number INTEGER NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		// page_number is contiguous by convention, not constraint, so this
		// index is deliberately non-unique.
		_, err = db.Exec(`CREATE INDEX ix_pages_section_id_page_number ON pages (section_id, page_number)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE reading_progress (
				id TEXT PRIMARY KEY,
				user_id TEXT REFERENCES users (id) ON DELETE CASCADE,
				section_id TEXT NOT NULL REFERENCES sections (id) ON DELETE CASCADE,
				page_id TEXT REFERENCES pages (id) ON DELETE CASCADE,
				page_number INTEGER NOT NULL DEFAULT 1,
				completed BOOLEAN NOT NULL DEFAULT FALSE,
				last_read_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		// One row per (identity, section). A plain UNIQUE on (user_id,
		// section_id) would admit unlimited rows for the anonymous trail
		// because SQLite treats NULLs as distinct, so the index coalesces.
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_reading_progress_identity_section ON reading_progress (COALESCE(user_id, ''), section_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_reading_progress_section_id ON reading_progress (section_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_reading_progress_last_read_at ON reading_progress (last_read_at)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"reading_progress", "pages", "sections", "chapters", "users"} {
			_, err := db.Exec("DROP TABLE IF EXISTS " + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
