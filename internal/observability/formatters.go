// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/report"
	"github.com/jonathan/course-export/internal/types"
)

// Printer handles formatted output for preview and verbose modes
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(p.out)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// PrintGroups renders the grouped courses as one table, a section per department.
func (p *Printer) PrintGroups(groups *report.Groups, lookup report.Lookup) {
	if groups == nil || groups.Len() == 0 {
		fmt.Fprintln(p.out, "No selected courses found.") //nolint:errcheck // writing to stdout
		return
	}

	t := p.newTable("Selected courses")
	t.AppendHeader(table.Row{"Department", "Number", "Course", "Type"})
	for _, dep := range groups.Departments() {
		label := dep.Code
		if entry, ok := lookup.Lookup(dep.Code); ok {
			label = fmt.Sprintf("%s %s", dep.Code, entry.Name)
		} else {
			label += " (unknown)"
		}
		for _, c := range dep.Courses {
			t.AppendRow(table.Row{label, c.Number, report.ShortTitle(c.Name), c.Type})
		}
		t.AppendSeparator()
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d departments", groups.Len()), fmt.Sprintf("%d courses", groups.CourseCount())})
	t.Render()
}

// PrintSummary outputs the outcome of an export.
func (p *Printer) PrintSummary(summary *types.ExportSummary, location string) {
	if summary == nil {
		return
	}

	t := p.newTable("Export " + summary.SessionID)
	t.AppendRows([]table.Row{
		{"File", location},
		{"Departments", summary.Departments},
		{"Courses", summary.Courses},
		{"Bytes", summary.Bytes},
		{"Skipped", len(summary.Skipped)},
	})
	t.Render()

	for _, s := range summary.Skipped {
		fmt.Fprintf(p.out, "  ⚠ %s\n", s) //nolint:errcheck // writing to stdout
	}
}

// PrintDepartments lists the department table, optionally restricted to one faculty.
func (p *Printer) PrintDepartments(tbl *departments.Table, faculty string) {
	codes := tbl.Codes()
	if faculty != "" {
		codes = tbl.ByFaculty(faculty)
	}

	t := p.newTable("Departments")
	t.AppendHeader(table.Row{"Code", "Name", "Faculty"})
	for _, code := range codes {
		dep, _ := tbl.Lookup(code)
		t.AppendRow(table.Row{code, dep.Name, dep.Faculty})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d departments", len(codes)), ""})
	t.Render()
}
