package sections

// CreateSectionPayload is the request body for creating a section.
type CreateSectionPayload struct {
	ChapterID string   `json:"chapter_id" validate:"required,uuid"`
	Title     string   `json:"title" validate:"required,max=300"`
	Slug      string   `json:"slug" validate:"omitempty,max=300"`
	Mood      *string  `json:"mood" validate:"omitempty,max=100"`
	Tags      []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Thumbnail *string  `json:"thumbnail" validate:"omitempty,url"`
	SortOrder int      `json:"sort_order" validate:"required,min=1"`
}

// UpdateSectionPayload is the request body for updating a section.
type UpdateSectionPayload struct {
	Title     *string  `json:"title" validate:"omitempty,max=300"`
	Slug      *string  `json:"slug" validate:"omitempty,max=300"`
	Mood      *string  `json:"mood" validate:"omitempty,max=100"`
	Tags      []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Thumbnail *string  `json:"thumbnail" validate:"omitempty,url"`
	SortOrder *int     `json:"sort_order" validate:"omitempty,min=1"`
}
