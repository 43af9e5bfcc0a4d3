package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSink writes to a temporary file next to the destination and renames it into place on Close.
type FileSink struct {
	dir     string
	opts    Options
	tmp     *os.File
	written int64
	done    bool
}

// NewFileSink creates a sink that produces dir/opts.Filename.
func NewFileSink(dir string, opts Options) (*FileSink, error) {
	opts.Filename = opts.filename()
	if strings.ContainsAny(opts.Filename, `/\`) || opts.Filename == "." || opts.Filename == ".." {
		return nil, &Error{Op: "open", Filename: opts.Filename, Message: "filename must not contain a path"}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &Error{Op: "open", Filename: opts.Filename, Message: "failed to create output directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, "."+opts.Filename+".*.part")
	if err != nil {
		return nil, &Error{Op: "open", Filename: opts.Filename, Message: "failed to create temp file", Cause: err}
	}

	return &FileSink{dir: dir, opts: opts, tmp: tmp}, nil
}

// FileFactory returns a Factory producing FileSinks in dir.
func FileFactory(dir string) Factory {
	return func(opts Options) (Sink, error) {
		return NewFileSink(dir, opts)
	}
}

// Path returns the final location of the artifact.
func (s *FileSink) Path() string {
	return filepath.Join(s.dir, s.opts.Filename)
}

func (s *FileSink) Write(p []byte) (int, error) {
	if s.done {
		return 0, &Error{Op: "write", Filename: s.opts.Filename, Cause: ErrClosed}
	}
	n, err := s.tmp.Write(p)
	s.written += int64(n)
	if err != nil {
		return n, &Error{Op: "write", Filename: s.opts.Filename, Cause: err}
	}
	return n, nil
}

// Close syncs the temp file and renames it over the destination. A size mismatch against
// Options.Size discards the file.
func (s *FileSink) Close() error {
	if s.done {
		return &Error{Op: "close", Filename: s.opts.Filename, Cause: ErrClosed}
	}

	if s.opts.Size > 0 && s.written != s.opts.Size {
		_ = s.Abort()
		return &Error{
			Op:       "close",
			Filename: s.opts.Filename,
			Message:  fmt.Sprintf("wrote %d bytes, expected %d", s.written, s.opts.Size),
		}
	}

	if err := s.tmp.Sync(); err != nil {
		_ = s.Abort()
		return &Error{Op: "close", Filename: s.opts.Filename, Message: "failed to sync", Cause: err}
	}
	if err := s.tmp.Close(); err != nil {
		_ = os.Remove(s.tmp.Name())
		s.done = true
		return &Error{Op: "close", Filename: s.opts.Filename, Cause: err}
	}
	s.done = true

	if err := os.Chmod(s.tmp.Name(), 0644); err != nil {
		_ = os.Remove(s.tmp.Name())
		return &Error{Op: "close", Filename: s.opts.Filename, Message: "failed to set permissions", Cause: err}
	}
	if err := os.Rename(s.tmp.Name(), s.Path()); err != nil {
		_ = os.Remove(s.tmp.Name())
		return &Error{Op: "close", Filename: s.opts.Filename, Message: "failed to move into place", Cause: err}
	}
	return nil
}

// Abort removes the temp file. Aborting a finished sink is a no-op.
func (s *FileSink) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	_ = s.tmp.Close()
	if err := os.Remove(s.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return &Error{Op: "abort", Filename: s.opts.Filename, Cause: err}
	}
	return nil
}
