package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Analytics event types, one per meaningful reader interaction.
const (
	EventTypePageViewStart = "page_view_start"
	EventTypePageViewEnd   = "page_view_end"
	EventTypeMilestone     = "milestone"
	EventTypeMediaPlay     = "media_play"
)

// AnalyticsEvent is append-only; rows are never updated.
type AnalyticsEvent struct {
	bun.BaseModel `bun:"table:analytics_events,alias:ae"`

	ID        string  `bun:"id,pk,nullzero" json:"id"`
	UserID    *string `json:"user_id"` // null means an anonymous reader
	PageID    string  `bun:",notnull" json:"page_id"`
	SectionID string  `bun:",notnull" json:"section_id"`
	ChapterID string  `bun:",notnull" json:"chapter_id"`
	EventType string  `bun:",notnull" json:"event_type"`

	// Milestone is the crossed completion-ratio threshold, set only on
	// milestone events.
	Milestone *float64 `json:"milestone"`

	// DurationSeconds is how long the interaction lasted, set on
	// page_view_end and media_play events.
	DurationSeconds float64   `bun:",notnull" json:"duration_seconds"`
	CreatedAt       time.Time `bun:",notnull" json:"created_at"`

	// Relations
	User    *User    `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Page    *Page    `bun:"rel:belongs-to,join:page_id=id" json:"-"`
	Section *Section `bun:"rel:belongs-to,join:section_id=id" json:"-"`
	Chapter *Chapter `bun:"rel:belongs-to,join:chapter_id=id" json:"-"`
}
