package analytics

// IngestEventPayload is the request body for recording an interaction.
// UserID is only honored for unauthenticated requests; a session always
// wins over the body.
type IngestEventPayload struct {
	PageID          string   `json:"page_id" validate:"required,uuid"`
	EventType       string   `json:"event_type" validate:"required,oneof=page_view_start page_view_end milestone media_play"`
	Milestone       *float64 `json:"milestone" validate:"omitempty,gt=0,lte=1"`
	DurationSeconds float64  `json:"duration_seconds" validate:"omitempty,min=0"`
	UserID          *string  `json:"user_id" validate:"omitempty,uuid"`
}

// ListEventsQuery are the query params for the raw event listing.
type ListEventsQuery struct {
	PageID    *string `query:"page_id" json:"page_id,omitempty" validate:"omitempty,uuid"`
	SectionID *string `query:"section_id" json:"section_id,omitempty" validate:"omitempty,uuid"`
	ChapterID *string `query:"chapter_id" json:"chapter_id,omitempty" validate:"omitempty,uuid"`
	EventType *string `query:"event_type" json:"event_type,omitempty" validate:"omitempty,oneof=page_view_start page_view_end milestone media_play"`
	Limit     int     `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=1000"`
	Offset    int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
}
