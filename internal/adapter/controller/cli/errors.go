package cli

import (
	"errors"

	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

// ReportedError wraps an error that a presenter has already shown, so the
// entry point only has to set the exit status
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}

// reportError presents err and returns it marked as reported
func reportError(p output.Presenter, err error) error {
	if perr := p.PresentError(err); perr != nil && !errors.Is(perr, err) {
		return perr
	}
	return &ReportedError{Err: err}
}
