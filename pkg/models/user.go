package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Predefined role names.
const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `bun:",nullzero" json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash
	Role         string    `bun:",nullzero" json:"role"`
}

// IsAdmin reports whether the user can author content and read analytics.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity returns the user's progress-tracking identity.
func (u *User) Identity() Identity {
	return UserIdentity(u.ID)
}
