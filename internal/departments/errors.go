// Package departments holds the department reference table used to title report blocks.
package departments

import (
	"fmt"
	"strings"
)

// TableError represents a failure loading a department table
type TableError struct {
	Source  string
	Message string
	Cause   error
}

func (e *TableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("department table %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("department table %s: %s", e.Source, e.Message)
}

func (e *TableError) Unwrap() error {
	return e.Cause
}

// ValidationError lists schema violations found in a department table
type ValidationError struct {
	Source string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("department table %s failed validation:\n", ve.Source))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}
