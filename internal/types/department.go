//nolint:revive // types is a standard Go package name pattern
package types

// Department is an entry of the department reference table.
// Faculty may be empty.
type Department struct {
	Name    string `json:"name" yaml:"name"`
	Faculty string `json:"faculty" yaml:"faculty"`
}

// ExportSummary describes the outcome of one export.
type ExportSummary struct {
	SessionID   string   `json:"session_id"`
	Filename    string   `json:"filename"`
	Courses     int      `json:"courses"`
	Departments int      `json:"departments"`
	Bytes       int      `json:"bytes"`
	Skipped     []string `json:"skipped,omitempty"`
}
