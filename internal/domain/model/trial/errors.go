package trial

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no trial carries the requested ID
var ErrNotFound = errors.New("trial not found")

// ValidationError rejects a commit before the log is touched
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
