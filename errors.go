package csvmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNilReader is returned when a decode is attempted on a nil stream.
	ErrNilReader = errors.New("csvmap: nil reader")
	// ErrNilWriter is returned when an encode is attempted on a nil stream.
	ErrNilWriter = errors.New("csvmap: nil writer")
	// ErrEmptyPath is returned when a file operation receives an empty path.
	ErrEmptyPath = errors.New("csvmap: empty file path")
)

// FormatError reports a condition that makes a record type or a file
// unprocessable as a whole: a descriptor list with no mappable fields,
// duplicate column titles, or a header that does not validate. It always
// surfaces before any data row is decoded; per-row anomalies never raise it.
type FormatError struct {
	// Reason describes what failed.
	Reason string

	// Missing holds the expected columns absent from the file header,
	// joined by the field separator. Empty for non-header failures.
	Missing string
}

// Error formats the failure reason with the missing columns when present.
func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	if e.Missing != "" {
		return fmt.Sprintf("csvmap: %s: missing columns %s", e.Reason, e.Missing)
	}
	return "csvmap: " + e.Reason
}
