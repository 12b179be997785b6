// Package form is the rendering contract for enriched fields: it maps field
// types to widget behaviors and validates bound form values.
package form

import (
	"fmt"

	"github.com/etalase/etalase/internal/catalog/fields"
)

// Widget enumerates the renderable behaviors.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetNumber   Widget = "number"
	WidgetCurrency Widget = "currency"
	WidgetSelect   Widget = "select"
	WidgetCheckbox Widget = "checkbox"
	WidgetLookup   Widget = "lookup"
)

// WidgetSpec describes how a field type renders. Mask is advisory display
// formatting for the fixed-format code types; it is never enforced as an
// input constraint.
type WidgetSpec struct {
	Widget    Widget `json:"widget"`
	InputMode string `json:"input_mode,omitempty"`
	Mask      string `json:"mask,omitempty"`
}

// widgetTable is the closed mapping from field type to widget behavior.
// Every fields.FieldType member must appear here; WidgetFor refuses unknown
// types instead of guessing, and the package test walks the full enum.
var widgetTable = map[fields.FieldType]WidgetSpec{
	fields.TypeText:       {Widget: WidgetText},
	fields.TypeTextarea:   {Widget: WidgetTextarea},
	fields.TypeNumber:     {Widget: WidgetNumber, InputMode: "numeric"},
	fields.TypeCurrency:   {Widget: WidgetCurrency, InputMode: "numeric"},
	fields.TypeDate:       {Widget: WidgetText, Mask: "99-99-9999"},
	fields.TypeNPWP:       {Widget: WidgetText, InputMode: "numeric", Mask: "99.999.999.9-999.999"},
	fields.TypeNIK:        {Widget: WidgetText, InputMode: "numeric", Mask: "9999999999999999"},
	fields.TypePhone:      {Widget: WidgetText, InputMode: "tel"},
	fields.TypePostalCode: {Widget: WidgetText, InputMode: "numeric", Mask: "99999"},
	fields.TypeSelect:     {Widget: WidgetSelect},
	fields.TypeCheckbox:   {Widget: WidgetCheckbox},
	fields.TypeTable:      {Widget: WidgetLookup},
}

// WidgetFor returns the widget behavior for a field type.
func WidgetFor(t fields.FieldType) (WidgetSpec, error) {
	spec, ok := widgetTable[t]
	if !ok {
		return WidgetSpec{}, fmt.Errorf("form: no widget for field type %q", t)
	}
	return spec, nil
}
