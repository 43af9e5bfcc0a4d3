// Package report renders extracted courses into the tab-separated department report.
package report

import "fmt"

// UnknownDepartmentError represents a department code missing from the reference table
type UnknownDepartmentError struct {
	Code string
}

func (e *UnknownDepartmentError) Error() string {
	return fmt.Sprintf("unknown department: %q", e.Code)
}
