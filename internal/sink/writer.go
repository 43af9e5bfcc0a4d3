package sink

import "io"

// WriterSink forwards bytes to an io.Writer such as stdout. Written bytes cannot be recalled,
// so Abort only marks the sink finished.
type WriterSink struct {
	w    io.Writer
	opts Options
	done bool
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer, opts Options) *WriterSink {
	opts.Filename = opts.filename()
	return &WriterSink{w: w, opts: opts}
}

// WriterFactory returns a Factory producing WriterSinks on w.
func WriterFactory(w io.Writer) Factory {
	return func(opts Options) (Sink, error) {
		return NewWriterSink(w, opts), nil
	}
}

func (s *WriterSink) Write(p []byte) (int, error) {
	if s.done {
		return 0, &Error{Op: "write", Filename: s.opts.Filename, Cause: ErrClosed}
	}
	n, err := s.w.Write(p)
	if err != nil {
		return n, &Error{Op: "write", Filename: s.opts.Filename, Cause: err}
	}
	return n, nil
}

func (s *WriterSink) Close() error {
	if s.done {
		return &Error{Op: "close", Filename: s.opts.Filename, Cause: ErrClosed}
	}
	s.done = true
	return nil
}

func (s *WriterSink) Abort() error {
	s.done = true
	return nil
}
