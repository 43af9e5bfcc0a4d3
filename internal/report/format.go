package report

import (
	"strings"

	"github.com/jonathan/course-export/internal/types"
)

// Separator follows the department code line of each block.
const Separator = "----------------------------"

// placeholderColumns are constant columns expected by the import tool that reads the report.
const placeholderColumns = "9\t9\t9\t"

// Lookup resolves a department code to its reference entry.
type Lookup interface {
	Lookup(code string) (types.Department, bool)
}

// Options configures formatting.
type Options struct {
	// SkipUnknown drops departments missing from the table instead of failing.
	SkipUnknown bool
}

// Output is a rendered report.
type Output struct {
	Text        string
	Departments int
	Courses     int
	// UnknownCodes lists department codes dropped under SkipUnknown.
	UnknownCodes []string
}

// Format renders groups as the department report. All department codes are resolved before any
// text is produced, so an unknown code in strict mode yields no partial output.
func Format(groups *Groups, table Lookup, opts *Options) (*Output, error) {
	if opts == nil {
		opts = &Options{}
	}

	out := &Output{}
	names := make([]string, len(groups.Departments()))
	known := make([]bool, len(groups.Departments()))
	for i, dep := range groups.Departments() {
		entry, ok := table.Lookup(dep.Code)
		if !ok {
			if !opts.SkipUnknown {
				return nil, &UnknownDepartmentError{Code: dep.Code}
			}
			out.UnknownCodes = append(out.UnknownCodes, dep.Code)
			continue
		}
		names[i], known[i] = entry.Name, true
	}

	var sb strings.Builder
	for i, dep := range groups.Departments() {
		if !known[i] {
			continue
		}
		writeBlock(&sb, names[i], dep)
		out.Departments++
		out.Courses += len(dep.Courses)
	}
	out.Text = sb.String()

	return out, nil
}

// FormatCourses groups courses and renders them in one step.
func FormatCourses(courses []types.Course, table Lookup, opts *Options) (*Output, error) {
	return Format(GroupByDepartment(courses), table, opts)
}

func writeBlock(sb *strings.Builder, name string, dep *Department) {
	sb.WriteString(name)
	sb.WriteByte('\n')
	sb.WriteString(Tabbize(dep.Code))
	sb.WriteByte('\n')
	sb.WriteString(Separator)
	sb.WriteByte('\n')
	for _, c := range dep.Courses {
		sb.WriteString(Row(c))
	}
	sb.WriteString("\n\n")
}

// Row renders one course line of a department block.
func Row(c types.Course) string {
	var sb strings.Builder
	sb.WriteString(Tabbize(c.Suffix()))
	sb.WriteString(Tabbize(c.Prefix()))
	sb.WriteString(placeholderColumns)
	sb.WriteString(ShortTitle(c.Name))
	sb.WriteString(" - ")
	sb.WriteString(c.Type)
	sb.WriteByte('\n')
	return sb.String()
}

// ShortTitle cuts a group title before its first parenthesized qualifier, dropping the
// character that precedes "(". Titles without "(" are returned unchanged.
func ShortTitle(title string) string {
	open := strings.Index(title, "(")
	if open < 0 {
		return title
	}
	runes := []rune(title[:open])
	if len(runes) == 0 {
		return ""
	}
	return string(runes[:len(runes)-1])
}
