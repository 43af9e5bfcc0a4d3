package export

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/course-export/internal/extract"
	"github.com/jonathan/course-export/internal/report"
	"github.com/jonathan/course-export/internal/sink"
	"github.com/jonathan/course-export/internal/types"
)

// Options configures an export session.
type Options struct {
	// Filename of the produced artifact; defaults to sink.DefaultFilename.
	Filename string
	// SkipInvalid skips malformed course elements and unknown departments instead of failing.
	SkipInvalid bool
	// Resolver overrides how course groups are found on the page.
	Resolver extract.GroupResolver
	Verbose  bool
	// Logger receives verbose output; defaults to the standard logger.
	Logger *log.Logger
}

// Session owns the state of exports triggered from one place (a CLI run, a server client).
// Exports within a session are serialized.
type Session struct {
	ID    uuid.UUID
	table report.Lookup
	opts  Options
	mu    sync.Mutex
}

// Plan is an extracted and formatted report that has not been written anywhere yet.
type Plan struct {
	Courses []types.Course
	Groups  *report.Groups
	Output  *report.Output
	Skipped []string
}

// NewSession creates a session that resolves department names through table.
func NewSession(table report.Lookup, opts *Options) *Session {
	if opts == nil {
		opts = &Options{}
	}
	o := *opts
	if o.Filename == "" {
		o.Filename = sink.DefaultFilename
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return &Session{ID: uuid.New(), table: table, opts: o}
}

// Build extracts the selected courses from html and renders the report without writing it.
func (s *Session) Build(html io.Reader) (*Plan, error) {
	extracted, err := extract.FromReader(html, &extract.Options{
		SkipMalformed: s.opts.SkipInvalid,
		Resolver:      s.opts.Resolver,
	})
	if err != nil {
		return nil, &Error{SessionID: s.ID.String(), Step: "extract", Cause: err}
	}
	s.logf("extracted %d courses (%d skipped)", len(extracted.Courses), len(extracted.Skipped))

	groups := report.GroupByDepartment(extracted.Courses)
	out, err := report.Format(groups, s.table, &report.Options{SkipUnknown: s.opts.SkipInvalid})
	if err != nil {
		return nil, &Error{SessionID: s.ID.String(), Step: "format", Cause: err}
	}
	s.logf("formatted %d departments, %d bytes", out.Departments, len(out.Text))

	plan := &Plan{Courses: extracted.Courses, Groups: groups, Output: out}
	for _, skipped := range extracted.Skipped {
		plan.Skipped = append(plan.Skipped, skipped.Error())
	}
	for _, code := range out.UnknownCodes {
		plan.Skipped = append(plan.Skipped, (&report.UnknownDepartmentError{Code: code}).Error())
	}
	return plan, nil
}

// Run performs one export: the page is extracted and formatted, then written to a sink from
// newSink in a single Write followed by Close. Any failure aborts the sink.
func (s *Session) Run(ctx context.Context, html io.Reader, newSink sink.Factory) (*types.ExportSummary, error) {
	if !s.mu.TryLock() {
		return nil, ErrExportInProgress
	}
	defer s.mu.Unlock()

	plan, err := s.Build(html)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &Error{SessionID: s.ID.String(), Step: "sink", Cause: err}
	}

	payload := []byte(plan.Output.Text)
	out, err := newSink(sink.Options{Filename: s.opts.Filename, Size: int64(len(payload))})
	if err != nil {
		return nil, &Error{SessionID: s.ID.String(), Step: "sink", Cause: err}
	}

	if _, err := out.Write(payload); err != nil {
		s.abort(out)
		return nil, &Error{SessionID: s.ID.String(), Step: "sink", Cause: err}
	}
	if err := ctx.Err(); err != nil {
		s.abort(out)
		return nil, &Error{SessionID: s.ID.String(), Step: "sink", Cause: err}
	}
	if err := out.Close(); err != nil {
		s.abort(out)
		return nil, &Error{SessionID: s.ID.String(), Step: "sink", Cause: err}
	}
	s.logf("wrote %s (%d bytes)", s.opts.Filename, len(payload))

	return &types.ExportSummary{
		SessionID:   s.ID.String(),
		Filename:    s.opts.Filename,
		Courses:     plan.Output.Courses,
		Departments: plan.Output.Departments,
		Bytes:       len(payload),
		Skipped:     plan.Skipped,
	}, nil
}

func (s *Session) abort(out sink.Sink) {
	if err := out.Abort(); err != nil {
		s.opts.Logger.Printf("[EXPORT] session %s: abort failed: %v", s.ID, err)
	}
}

func (s *Session) logf(format string, args ...any) {
	if !s.opts.Verbose {
		return
	}
	s.opts.Logger.Printf("[EXPORT] session %s: "+format, append([]any{s.ID}, args...)...)
}
