package categories

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etalase/etalase/internal/platform/httpx"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func validateCategory(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", httpx.ErrValidation)
	}
	if !slugPattern.MatchString(c.Slug) {
		return fmt.Errorf("%w: slug must be kebab-case", httpx.ErrValidation)
	}
	return nil
}
