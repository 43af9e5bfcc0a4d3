package sink

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// ErrPartialResponse is returned by HTTPSink.Abort when bytes already reached the client.
var ErrPartialResponse = errors.New("response already partially sent")

// HTTPSink streams the artifact as a file download on an HTTP response.
type HTTPSink struct {
	w       http.ResponseWriter
	opts    Options
	started bool
	written int64
	done    bool
}

// NewHTTPSink prepares w for an attachment download. Headers are sent on the first Write.
func NewHTTPSink(w http.ResponseWriter, opts Options) *HTTPSink {
	opts.Filename = opts.filename()
	return &HTTPSink{w: w, opts: opts}
}

// HTTPFactory returns a Factory producing HTTPSinks on w.
func HTTPFactory(w http.ResponseWriter) Factory {
	return func(opts Options) (Sink, error) {
		return NewHTTPSink(w, opts), nil
	}
}

func (s *HTTPSink) start() {
	if s.started {
		return
	}
	s.started = true
	h := s.w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": s.opts.Filename}))
	h.Set("X-Content-Type-Options", "nosniff")
	if s.opts.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(s.opts.Size, 10))
	}
	s.w.WriteHeader(http.StatusOK)
}

func (s *HTTPSink) Write(p []byte) (int, error) {
	if s.done {
		return 0, &Error{Op: "write", Filename: s.opts.Filename, Cause: ErrClosed}
	}
	s.start()
	n, err := s.w.Write(p)
	s.written += int64(n)
	if err != nil {
		return n, &Error{Op: "write", Filename: s.opts.Filename, Cause: err}
	}
	return n, nil
}

// Close flushes the response. An export with no bytes still produces an empty download.
func (s *HTTPSink) Close() error {
	if s.done {
		return &Error{Op: "close", Filename: s.opts.Filename, Cause: ErrClosed}
	}
	s.done = true
	s.start()
	if s.opts.Size > 0 && s.written != s.opts.Size {
		return &Error{
			Op:       "close",
			Filename: s.opts.Filename,
			Message:  fmt.Sprintf("wrote %d bytes, expected %d", s.written, s.opts.Size),
		}
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

// Abort leaves the response untouched when nothing was sent so the caller can still write an
// error. Once bytes are out it returns ErrPartialResponse.
func (s *HTTPSink) Abort() error {
	s.done = true
	if s.started {
		return &Error{Op: "abort", Filename: s.opts.Filename, Cause: ErrPartialResponse}
	}
	return nil
}

// Started reports whether response headers have been sent.
func (s *HTTPSink) Started() bool {
	return s.started
}
