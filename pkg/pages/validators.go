package pages

// CreatePagePayload is the request body for creating a page.
type CreatePagePayload struct {
	SectionID  string `json:"section_id" validate:"required,uuid"`
	Content    string `json:"content" validate:"required"`
	PageNumber int    `json:"page_number" validate:"required,min=1"`
}

// UpdatePagePayload is the request body for updating a page.
type UpdatePagePayload struct {
	Content    *string `json:"content"`
	PageNumber *int    `json:"page_number" validate:"omitempty,min=1"`
}
