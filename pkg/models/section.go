package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        string    `bun:"id,pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ChapterID string    `bun:",notnull" json:"chapter_id"`
	Title     string    `bun:",notnull" json:"title"`
	Slug      string    `bun:",notnull" json:"slug"`
	Mood      *string   `json:"mood"`
	Thumbnail *string   `json:"thumbnail"`
	SortOrder int       `bun:",notnull" json:"sort_order"`

	// Tags is an ordered list of strings stored as a JSON text column.
	Tags     []string `bun:"-" json:"tags"`
	TagsJSON string   `bun:"tags,nullzero" json:"-"`

	// Relations
	Chapter *Chapter `bun:"rel:belongs-to,join:chapter_id=id" json:"-"`
	Pages   []*Page  `bun:"rel:has-many,join:id=section_id" json:"pages,omitempty"`
}

// MarshalTags serializes Tags into the stored column. Call before inserts and
// updates that touch tags.
func (s *Section) MarshalTags() error {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	data, err := json.Marshal(s.Tags)
	if err != nil {
		return errors.WithStack(err)
	}
	s.TagsJSON = string(data)
	return nil
}

// UnmarshalTags populates Tags from the stored column. Call after scans.
func (s *Section) UnmarshalTags() error {
	if s.TagsJSON == "" {
		s.Tags = []string{}
		return nil
	}
	err := json.Unmarshal([]byte(s.TagsJSON), &s.Tags)
	return errors.WithStack(err)
}
