// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/model"
)

const maxIdentifierLength = 64

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidateIdentifier checks a facility or tool id taken from user input.
func (v *ValidationUtil) ValidateIdentifier(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id cannot be empty", fab_errors.ErrInvalidSelection, kind)
	}
	if len(id) > maxIdentifierLength {
		return fmt.Errorf("%w: %s id longer than %d characters", fab_errors.ErrInvalidSelection, kind, maxIdentifierLength)
	}
	if strings.ContainsAny(id, "/?#") {
		return fmt.Errorf("%w: %s id contains a reserved character", fab_errors.ErrInvalidSelection, kind)
	}
	return nil
}

// ValidateDirectory checks a facility directory payload. Keys must be unique
// ignoring case, since lookups are case-insensitive.
func (v *ValidationUtil) ValidateDirectory(dir model.FacilityDirectory) error {
	seen := make(map[string]string, len(dir))
	for facility, tools := range dir {
		if strings.TrimSpace(facility) == "" {
			return fmt.Errorf("%w: empty facility id", fab_errors.ErrInvalidDirectory)
		}
		folded := strings.ToUpper(facility)
		if other, ok := seen[folded]; ok {
			return fmt.Errorf("%w: facilities %q and %q differ only in case", fab_errors.ErrInvalidDirectory, other, facility)
		}
		seen[folded] = facility

		for _, tool := range tools {
			if strings.TrimSpace(tool) == "" {
				return fmt.Errorf("%w: facility %q has an empty tool id", fab_errors.ErrInvalidDirectory, facility)
			}
		}
	}
	return nil
}
