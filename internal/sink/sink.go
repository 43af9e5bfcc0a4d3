package sink

import "io"

// DefaultFilename is the name of the downloaded report.
const DefaultFilename = "lautman_courses.txt"

// Sink accepts the bytes of one export. Write may be called any number of times; Close
// finalizes the artifact and Abort discards whatever was written.
type Sink interface {
	io.Writer
	Close() error
	Abort() error
}

// Options describes the artifact a sink will produce.
type Options struct {
	Filename string
	// Size is the expected number of bytes; 0 means unknown.
	Size int64
}

// Factory opens a sink for one export.
type Factory func(opts Options) (Sink, error)

func (o Options) filename() string {
	if o.Filename == "" {
		return DefaultFilename
	}
	return o.Filename
}
