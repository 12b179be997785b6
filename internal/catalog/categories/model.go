package categories

import (
	"encoding/json"
	"time"

	"github.com/etalase/etalase/internal/catalog/fields"
)

// Category represents a product category. Its dynamic form layout lives in
// FieldConfig, stored as a JSONB blob on the category row.
type Category struct {
	ID           int64              `json:"id"`
	TenantID     int64              `json:"tenant_id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	DisplayOrder int                `json:"display_order"`
	IsActive     bool               `json:"is_active"`
	FieldConfig  []FieldConfigEntry `json:"field_config"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Requirement is the per-category visibility/obligation level of a field.
type Requirement string

const (
	RequirementHidden   Requirement = "hidden"
	RequirementOptional Requirement = "optional"
	RequirementRequired Requirement = "required"
)

// Valid reports whether r is a known requirement level.
func (r Requirement) Valid() bool {
	switch r {
	case RequirementHidden, RequirementOptional, RequirementRequired:
		return true
	}
	return false
}

// FieldRefKind discriminates the two configuration formats.
type FieldRefKind string

const (
	// FieldRefReference points at a library definition by id.
	FieldRefReference FieldRefKind = "reference"
	// FieldRefInline carries its own copy of the field shape. This is the
	// legacy format; it stays a permanent, explicit branch because old
	// category blobs still hold it.
	FieldRefInline FieldRefKind = "inline"
)

// InlineField duplicates the renderable subset of a field definition inside
// a category blob.
type InlineField struct {
	Name        string           `json:"name"`
	Key         string           `json:"key"`
	Type        fields.FieldType `json:"type"`
	Options     []string         `json:"options,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
}

// FieldConfigEntry is one row of a category's field configuration. A
// reference entry may additionally carry inline data, which enrichment uses
// as a fallback when the referenced definition has been deleted.
type FieldConfigEntry struct {
	ID          string       `json:"id"`
	Kind        FieldRefKind `json:"kind"`
	FieldID     int64        `json:"field_id,omitempty"`
	Inline      *InlineField `json:"inline,omitempty"`
	Requirement Requirement  `json:"requirement"`
}

// legacy wire shapes: before the tagged format, reference entries stored a
// bare fieldId and inline entries spread name/key/type at the top level.
type fieldConfigEntryWire struct {
	ID          string       `json:"id"`
	Kind        FieldRefKind `json:"kind"`
	FieldID     int64        `json:"field_id"`
	LegacyID    int64        `json:"fieldId"`
	Inline      *InlineField `json:"inline"`
	Name        string       `json:"name"`
	Key         string       `json:"key"`
	Type        string       `json:"type"`
	Options     []string     `json:"options"`
	Placeholder string       `json:"placeholder"`
	Requirement Requirement  `json:"requirement"`
}

// UnmarshalJSON accepts both the tagged format and the legacy shapes, and
// normalizes everything into the tagged form.
func (e *FieldConfigEntry) UnmarshalJSON(data []byte) error {
	var wire fieldConfigEntryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	e.ID = wire.ID
	e.Requirement = wire.Requirement
	if e.Requirement == "" {
		e.Requirement = RequirementOptional
	}

	fieldID := wire.FieldID
	if fieldID == 0 {
		fieldID = wire.LegacyID
	}
	inline := wire.Inline
	if inline == nil && wire.Key != "" {
		inline = &InlineField{
			Name:        wire.Name,
			Key:         wire.Key,
			Type:        fields.FieldType(wire.Type),
			Options:     wire.Options,
			Placeholder: wire.Placeholder,
		}
	}

	switch {
	case fieldID != 0:
		e.Kind = FieldRefReference
		e.FieldID = fieldID
		e.Inline = inline
	default:
		e.Kind = FieldRefInline
		e.FieldID = 0
		e.Inline = inline
	}
	return nil
}
