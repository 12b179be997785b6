package form

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
)

// deviceIDKeys are the inventory-tracking identifier fields. They carry the
// one hard format constraint in the contract: exactly 15 digits, because the
// values feed uniqueness lookups elsewhere.
var deviceIDKeys = map[string]bool{
	"imei":  true,
	"imei2": true,
}

const deviceIDLength = 15

// Validate checks every bound value against its enriched field and returns
// all failures at once, keyed by field key. It never stops at the first
// failure and never rejects a value for display-mask reasons; masks are
// advisory. Unresolved placeholders and hidden fields are skipped, since the
// renderer never collects input for either.
func Validate(enriched []enrich.EnrichedField, values map[string]string) map[string]string {
	failures := make(map[string]string)
	for _, field := range enriched {
		if field.Unresolved || field.Requirement == categories.RequirementHidden {
			continue
		}
		if msg := validateOne(field, strings.TrimSpace(values[field.Key])); msg != "" {
			failures[field.Key] = msg
		}
	}
	return failures
}

func validateOne(field enrich.EnrichedField, value string) string {
	if value == "" {
		if field.Requirement == categories.RequirementRequired {
			return fmt.Sprintf("%s is required", field.Label)
		}
		return ""
	}

	if deviceIDKeys[field.Key] {
		if len(value) != deviceIDLength || !digitsOnly(value) {
			return fmt.Sprintf("%s must be exactly %d digits", field.Label, deviceIDLength)
		}
	}

	spec, err := WidgetFor(field.Type)
	if err != nil {
		return "unknown field type"
	}

	switch spec.Widget {
	case WidgetNumber, WidgetCurrency:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Sprintf("%s must be a number", field.Label)
		}
	case WidgetSelect:
		// A value outside the configured options is a client error, never
		// silently coerced.
		if !slices.Contains(field.Options, value) {
			return fmt.Sprintf("%s must be one of the configured options", field.Label)
		}
	case WidgetCheckbox:
		if value != "true" && value != "false" {
			return fmt.Sprintf("%s must be true or false", field.Label)
		}
	}
	return ""
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
