package fields

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etalase/etalase/internal/platform/httpx"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// validateDefinition enforces the save-time rules. Key format is only
// checked on create; the key never changes afterwards.
func validateDefinition(def FieldDefinition, creating bool) error {
	if creating {
		if !keyPattern.MatchString(def.Key) {
			return fmt.Errorf("%w: key must be snake_case", httpx.ErrValidation)
		}
	}
	if strings.TrimSpace(def.Label) == "" {
		return fmt.Errorf("%w: label is required", httpx.ErrValidation)
	}
	if !def.Type.Valid() {
		return fmt.Errorf("%w: unknown field type %q", httpx.ErrValidation, def.Type)
	}
	if !def.Category.Valid() {
		return fmt.Errorf("%w: unknown field category %q", httpx.ErrValidation, def.Category)
	}

	switch def.Type {
	case TypeSelect:
		if len(def.Options) == 0 {
			return fmt.Errorf("%w: select field needs at least one option", httpx.ErrValidation)
		}
	case TypeTable:
		cfg := def.TableConfig
		if cfg == nil || cfg.TableName == "" || cfg.ValueColumn == "" || cfg.LabelColumn == "" {
			return fmt.Errorf("%w: table field needs table, value and label columns", httpx.ErrValidation)
		}
	default:
		if len(def.Options) > 0 {
			return fmt.Errorf("%w: options are only valid on select fields", httpx.ErrValidation)
		}
	}
	if def.Type != TypeTable && def.TableConfig != nil {
		return fmt.Errorf("%w: table config is only valid on table fields", httpx.ErrValidation)
	}
	return nil
}
