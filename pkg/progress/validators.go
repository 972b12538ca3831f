package progress

// UpsertProgressPayload is the request body for reporting a position.
// UserID is only honored for unauthenticated requests; a session always
// wins over the body.
type UpsertProgressPayload struct {
	SectionID  string  `json:"section_id" validate:"required,uuid"`
	PageID     *string `json:"page_id" validate:"omitempty,uuid"`
	PageNumber int     `json:"page_number" validate:"required,min=1"`
	Completed  bool    `json:"completed"`
	UserID     *string `json:"user_id" validate:"omitempty,uuid"`
}

// ListProgressQuery are the query params for reading progress back.
type ListProgressQuery struct {
	UserID *string `query:"user_id" validate:"omitempty,uuid"`
}
