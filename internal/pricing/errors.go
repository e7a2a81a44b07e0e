// internal/pricing/errors.go
package pricing

import (
	"errors"
	"fmt"
)

// Fatal errors abort the whole pricing call.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrDesignNotFound  = errors.New("design not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ErrInvalidPromotionConfig marks a promotion the engine refuses to apply.
// It never aborts pricing; the promotion is skipped and reported as a warning.
var ErrInvalidPromotionConfig = errors.New("invalid promotion config")

// LineError ties a fatal error to the line that caused it.
type LineError struct {
	Index int
	Ref   string
	Err   error
}

func (e *LineError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("line %d: %v (%s)", e.Index, e.Err, e.Ref)
	}
	return fmt.Sprintf("line %d: %v", e.Index, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(index int, ref string, err error) error {
	return &LineError{Index: index, Ref: ref, Err: err}
}

func invalidPromotion(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPromotionConfig, fmt.Sprintf(format, args...))
}
