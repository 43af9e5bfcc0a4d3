// Package sink provides byte destinations that materialize an export as a downloadable file.
package sink

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when a sink is used after Close or Abort.
var ErrClosed = errors.New("sink already closed")

// Error represents a failed sink operation
type Error struct {
	Op       string // write, close or abort
	Filename string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("sink %s %s", e.Op, e.Filename)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
