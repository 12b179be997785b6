package fields

import "time"

// FieldType enumerates every supported input type. The set is closed: the
// form package keeps an exhaustive widget mapping for it, so adding a value
// here without extending that table is a startup error, not a silent default.
type FieldType string

const (
	TypeText       FieldType = "text"
	TypeTextarea   FieldType = "textarea"
	TypeNumber     FieldType = "number"
	TypeCurrency   FieldType = "currency"
	TypeDate       FieldType = "date"
	TypeNPWP       FieldType = "npwp"
	TypeNIK        FieldType = "nik"
	TypePhone      FieldType = "phone"
	TypePostalCode FieldType = "postal_code"
	TypeSelect     FieldType = "select"
	TypeCheckbox   FieldType = "checkbox"
	TypeTable      FieldType = "table"
)

// Valid reports whether t is a member of the closed type set.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeTextarea, TypeNumber, TypeCurrency, TypeDate,
		TypeNPWP, TypeNIK, TypePhone, TypePostalCode,
		TypeSelect, TypeCheckbox, TypeTable:
		return true
	}
	return false
}

// FieldCategory classifies a definition for admin grouping. Classification
// only; it has no behavioral effect.
type FieldCategory string

const (
	CategoryBasic     FieldCategory = "basic"
	CategorySpec      FieldCategory = "spec"
	CategoryPrice     FieldCategory = "price"
	CategoryFiscal    FieldCategory = "fiscal"
	CategoryLogistics FieldCategory = "logistics"
)

// Valid reports whether c is a known classification.
func (c FieldCategory) Valid() bool {
	switch c {
	case CategoryBasic, CategorySpec, CategoryPrice, CategoryFiscal, CategoryLogistics:
		return true
	}
	return false
}

// TableConfig identifies an external lookup table for table-relation fields.
type TableConfig struct {
	TableName   string `json:"table_name"`
	ValueColumn string `json:"value_column"`
	LabelColumn string `json:"label_column"`
	OrderBy     string `json:"order_by,omitempty"`
}

// FieldDefinition is a tenant-scoped entry in the global field library.
// Key is immutable after creation and unique within the tenant.
type FieldDefinition struct {
	ID           int64         `json:"id"`
	TenantID     int64         `json:"tenant_id"`
	Key          string        `json:"key"`
	Label        string        `json:"label"`
	Category     FieldCategory `json:"category"`
	Type         FieldType     `json:"type"`
	Options      []string      `json:"options,omitempty"`
	TableConfig  *TableConfig  `json:"table_config,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty"`
	HelpText     string        `json:"help_text,omitempty"`
	IsSystem     bool          `json:"is_system"`
	DisplayOrder int           `json:"display_order"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
