package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:c"`

	ID          string    `bun:"id,pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `bun:",notnull" json:"title"`
	Slug        string    `bun:",notnull" json:"slug"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"cover_image"`
	SortOrder   int       `bun:",notnull" json:"sort_order"`

	// Relations
	Sections []*Section `bun:"rel:has-many,join:id=chapter_id" json:"sections,omitempty"`
}
