package fields

// CreateFieldInput is the admin payload for a new library entry.
type CreateFieldInput struct {
	Key          string        `json:"key" validate:"required,max=64"`
	Label        string        `json:"label" validate:"required,max=120"`
	Category     FieldCategory `json:"category" validate:"required"`
	Type         FieldType     `json:"type" validate:"required"`
	Options      []string      `json:"options,omitempty"`
	TableConfig  *TableConfig  `json:"table_config,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty" validate:"max=200"`
	HelpText     string        `json:"help_text,omitempty" validate:"max=500"`
	DisplayOrder int           `json:"display_order"`
}

// UpdateFieldInput carries a partial update; nil means "leave unchanged".
type UpdateFieldInput struct {
	Label        *string        `json:"label,omitempty" validate:"omitempty,max=120"`
	Category     *FieldCategory `json:"category,omitempty"`
	Type         *FieldType     `json:"type,omitempty"`
	Options      []string       `json:"options,omitempty"`
	TableConfig  *TableConfig   `json:"table_config,omitempty"`
	Placeholder  *string        `json:"placeholder,omitempty" validate:"omitempty,max=200"`
	HelpText     *string        `json:"help_text,omitempty" validate:"omitempty,max=500"`
	DisplayOrder *int           `json:"display_order,omitempty"`
}
