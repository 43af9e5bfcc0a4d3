package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/course-export/internal/export"
	"github.com/jonathan/course-export/internal/extract"
	"github.com/jonathan/course-export/internal/report"
)

// ErrBusy indicates every export slot is taken
var ErrBusy = errors.New("too many exports in progress")

// HTTPStatus returns the appropriate HTTP status code for an export error
func HTTPStatus(err error) int {
	var malformed *extract.MalformedElementError
	var unknown *report.UnknownDepartmentError
	var parse *extract.ParseError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &malformed), errors.As(err, &unknown), errors.As(err, &parse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
