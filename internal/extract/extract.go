package extract

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/course-export/internal/types"
)

const (
	// SelectedSelector matches course cells the student has highlighted.
	SelectedSelector = ".courseGroup.course-cell-highlight"
	// NumberAttr holds the course number on a course cell.
	NumberAttr = "name"
)

// Options configures extraction.
type Options struct {
	// SkipMalformed skips elements that do not have the expected shape instead of failing.
	SkipMalformed bool
	// Resolver finds the group a course belongs to; defaults to DefaultResolver.
	Resolver GroupResolver
}

// Result holds the extracted courses in document order.
type Result struct {
	Courses []types.Course
	Skipped []*MalformedElementError
}

// FromHTML parses html and extracts the selected courses.
func FromHTML(html string, opts *Options) (*Result, error) {
	return FromReader(strings.NewReader(html), opts)
}

// FromReader parses a page from r and extracts the selected courses.
func FromReader(r io.Reader, opts *Options) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}
	return FromDocument(doc, opts)
}

// FromDocument extracts the selected courses from a parsed document. It does not modify doc.
func FromDocument(doc *goquery.Document, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = DefaultResolver()
	}

	result := &Result{Courses: make([]types.Course, 0)}
	var firstErr error

	doc.Find(SelectedSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		course, err := extractCourse(i, s, resolver)
		if err != nil {
			if opts.SkipMalformed {
				result.Skipped = append(result.Skipped, err)
				return true
			}
			firstErr = err
			return false
		}
		result.Courses = append(result.Courses, course)
		return true
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

func extractCourse(index int, s *goquery.Selection, resolver GroupResolver) (types.Course, *MalformedElementError) {
	number, ok := s.Attr(NumberAttr)
	if !ok {
		return types.Course{}, &MalformedElementError{Index: index, Reason: "missing " + NumberAttr + " attribute"}
	}
	if utf8.RuneCountInString(number) < types.MinNumberLength {
		return types.Course{}, &MalformedElementError{
			Index:  index,
			Number: number,
			Reason: "course number shorter than 10 characters",
		}
	}

	group, err := resolver.ResolveGroup(s)
	if err != nil {
		return types.Course{}, &MalformedElementError{
			Index:  index,
			Number: number,
			Reason: "cannot resolve course group",
			Cause:  err,
		}
	}

	return types.Course{
		Number: number,
		Name:   group.Title,
		Type:   TypeLabel(s.Text()),
	}, nil
}

// TypeLabel returns the text from the first "(" through the first ")", inclusive.
// It returns "" when either parenthesis is missing or they are out of order.
func TypeLabel(text string) string {
	open := strings.Index(text, "(")
	closing := strings.Index(text, ")")
	if open < 0 || closing < open {
		return ""
	}
	return text[open : closing+1]
}
