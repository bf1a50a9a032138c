// errors/selection_errors.go
package errors

import "errors"

var (
	ErrFacilityNotFound   = errors.New("facility not found")
	ErrToolNotFound       = errors.New("tool not found")
	ErrNoFacilitySelected = errors.New("no facility selected")
	ErrNoToolSelected     = errors.New("no tool selected")
	ErrInvalidSelection   = errors.New("invalid selection data")
	ErrSelectionStore     = errors.New("selection store operation failed")
)
