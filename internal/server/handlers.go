package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/course-export/internal/export"
	"github.com/jonathan/course-export/internal/sink"
)

const exportFilename = sink.DefaultFilename

// handleExport turns an uploaded registration page into the report download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.slots.TryAcquire(1) {
		s.errorResponse(w, http.StatusServiceUnavailable, ErrBusy.Error())
		return
	}
	defer s.slots.Release(1)

	skipInvalid, _ := strconv.ParseBool(r.URL.Query().Get("skip_invalid"))
	session := export.NewSession(s.table, &export.Options{
		Filename:    exportFilename,
		SkipInvalid: skipInvalid,
		Verbose:     s.verbose,
	})
	w.Header().Set("X-Export-Session", session.ID.String())

	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	var out *sink.HTTPSink
	summary, err := session.Run(r.Context(), body, func(opts sink.Options) (sink.Sink, error) {
		out = sink.NewHTTPSink(w, opts)
		return out, nil
	})
	if err != nil {
		log.Printf("[EXPORT] session %s failed: %v", session.ID, err)
		if out != nil && out.Started() {
			// headers are gone; drop the connection so the client sees a failed download
			panic(http.ErrAbortHandler)
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	log.Printf("[EXPORT] session %s: %d courses in %d departments, %d bytes, %d skipped",
		summary.SessionID, summary.Courses, summary.Departments, summary.Bytes, len(summary.Skipped))
}
