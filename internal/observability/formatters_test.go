package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/report"
	"github.com/jonathan/course-export/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintGroups(t *testing.T) {
	var buf bytes.Buffer
	groups := report.GroupByDepartment([]types.Course{
		{Number: "03668812349", Name: "מבוא למדעי המחשב (תרגיל)", Type: "(תרגיל)"},
		{Number: "99991111001", Name: "לא ידוע (שיעור)", Type: "(שיעור)"},
	})

	NewPrinter(&buf).PrintGroups(groups, departments.MustDefault())

	out := buf.String()
	assert.Contains(t, out, "0366 מתמטיקה")
	assert.Contains(t, out, "03668812349")
	assert.Contains(t, out, "מבוא למדעי המחשב")
	assert.Contains(t, out, "9999 (unknown)")
	assert.Contains(t, out, "2 COURSES")
}

func TestPrintGroups_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGroups(report.GroupByDepartment(nil), departments.MustDefault())
	assert.Contains(t, buf.String(), "No selected courses found.")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	summary := &types.ExportSummary{
		SessionID:   "abc",
		Filename:    "lautman_courses.txt",
		Courses:     3,
		Departments: 2,
		Bytes:       120,
		Skipped:     []string{"malformed course element #0"},
	}

	NewPrinter(&buf).PrintSummary(summary, "out/lautman_courses.txt")

	out := buf.String()
	assert.Contains(t, out, "out/lautman_courses.txt")
	assert.Contains(t, out, "malformed course element #0")
}

func TestPrintSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(nil, "")
	assert.Empty(t, buf.String())
}

func TestPrintDepartments_Faculty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDepartments(departments.MustDefault(), "משפטים")

	out := buf.String()
	assert.Contains(t, out, "1411")
	assert.Contains(t, out, "1493")
	assert.NotContains(t, out, "0366")
	assert.Contains(t, out, "2 DEPARTMENTS")
}
