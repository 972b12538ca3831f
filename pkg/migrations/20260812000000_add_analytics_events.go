package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE analytics_events (
				id TEXT PRIMARY KEY,
				user_id TEXT REFERENCES users (id) ON DELETE CASCADE,
				page_id TEXT NOT NULL REFERENCES pages (id) ON DELETE CASCADE,
				section_id TEXT NOT NULL REFERENCES sections (id) ON DELETE CASCADE,
				chapter_id TEXT NOT NULL REFERENCES chapters (id) ON DELETE CASCADE,
				event_type TEXT NOT NULL,
				milestone REAL,
				duration_seconds REAL NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_analytics_events_page_id ON analytics_events (page_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_analytics_events_section_id ON analytics_events (section_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_analytics_events_chapter_id ON analytics_events (chapter_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_analytics_events_user_id ON analytics_events (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_analytics_events_created_at ON analytics_events (created_at)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DROP TABLE IF EXISTS analytics_events`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
