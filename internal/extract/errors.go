// Package extract reads the selected courses out of a course-registration page.
package extract

import "fmt"

// MalformedElementError represents a selected course element that does not have the expected shape
type MalformedElementError struct {
	Index  int    // position among the selected elements
	Number string // identifier attribute, if one was read
	Reason string
	Cause  error
}

func (e *MalformedElementError) Error() string {
	msg := fmt.Sprintf("malformed course element #%d", e.Index)
	if e.Number != "" {
		msg += fmt.Sprintf(" (%s)", e.Number)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

func (e *MalformedElementError) Unwrap() error {
	return e.Cause
}

// ParseError represents a failure parsing the page HTML
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
