package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID        string    `bun:"id,pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SectionID string    `bun:",notnull" json:"section_id"`
	Content   string    `bun:",notnull" json:"content"`

	// PageNumber is 1-based. Contiguity within a section is a convention
	// upheld by the admin UI, not a constraint.
	PageNumber int `bun:",notnull" json:"page_number"`

	// Relations
	Section *Section `bun:"rel:belongs-to,join:section_id=id" json:"-"`
}
