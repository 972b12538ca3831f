package chapters

// CreateChapterPayload is the request body for creating a chapter.
type CreateChapterPayload struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Slug        string  `json:"slug" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CoverImage  *string `json:"cover_image" validate:"omitempty,url"`
	SortOrder   int     `json:"sort_order" validate:"required,min=1"`
}

// UpdateChapterPayload is the request body for updating a chapter.
type UpdateChapterPayload struct {
	Title       *string `json:"title" validate:"omitempty,max=300"`
	Slug        *string `json:"slug" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CoverImage  *string `json:"cover_image" validate:"omitempty,url"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,min=1"`
}
