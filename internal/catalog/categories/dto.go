package categories

// CategoryInput is the admin payload for creating or updating a category.
type CategoryInput struct {
	Name         string `json:"name" validate:"required,max=120"`
	Slug         string `json:"slug" validate:"required,max=120"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// AddFieldRequest references a library definition to append.
type AddFieldRequest struct {
	FieldID int64 `json:"field_id" validate:"required,gt=0"`
}

// SetRequirementRequest moves an entry to a new requirement level.
type SetRequirementRequest struct {
	Requirement Requirement `json:"requirement" validate:"required"`
}

// ReorderRequest replaces the configuration order wholesale.
type ReorderRequest struct {
	EntryIDs []string `json:"entry_ids" validate:"required,min=1"`
}
