// Package export runs one course export: extract, format, then hand the report to a sink.
package export

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when a session is asked to export while a previous export
// is still running.
var ErrExportInProgress = errors.New("export already in progress")

// Error wraps a failed export step with the session it belongs to
type Error struct {
	SessionID string
	Step      string // extract, format or sink
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s failed at %s: %v", e.SessionID, e.Step, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
