package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ReadingProgress is the durable position of one identity within one
// section. There is at most one row per (identity, section) pair; the
// uniqueness is enforced by an expression index on
// (COALESCE(user_id, ''), section_id) so the anonymous trail (null user_id)
// participates in the invariant too.
type ReadingProgress struct {
	bun.BaseModel `bun:"table:reading_progress,alias:rp"`

	ID         string    `bun:"id,pk,nullzero" json:"id"`
	UserID     *string   `json:"user_id"` // null means the anonymous trail
	SectionID  string    `bun:",notnull" json:"section_id"`
	PageID     *string   `json:"page_id"`
	PageNumber int       `bun:",notnull" json:"page_number"`
	Completed  bool      `bun:",notnull" json:"completed"`
	LastReadAt time.Time `bun:",notnull" json:"last_read_at"`

	// Relations
	User    *User    `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Section *Section `bun:"rel:belongs-to,join:section_id=id" json:"-"`
	Page    *Page    `bun:"rel:belongs-to,join:page_id=id" json:"-"`
}

// Identity returns the identity this row belongs to.
func (rp *ReadingProgress) Identity() Identity {
	if rp.UserID == nil {
		return AnonymousIdentity()
	}
	return UserIdentity(*rp.UserID)
}
