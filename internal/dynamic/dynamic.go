// Package dynamic builds codecs for CSV files without a compiled-in
// record type. The descriptor list is derived from the file's own
// header line, with every column treated as text, so the CLI and the
// validation server can inspect, check, and re-encode arbitrary files.
package dynamic

import (
	"fmt"
	"strings"

	"github.com/rowbin/csvmap"
)

// Record is a map-backed row. Column values are keyed by the header
// title exactly as it appears in the file.
type Record struct {
	Values map[string]string
}

// Get returns the value of a column, or "" when the column is absent.
func (r *Record) Get(col string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[col]
}

// FromHeader builds a codec over Record from a header line.
//
// Columns keep their file order (explicit per-column Order), so headers
// validate positionally and re-encoded output preserves the original
// column sequence. A leading column matching the row-number title is
// treated as the synthetic row-number column; when absent, row numbers
// are disabled on the returned codec.
func FromHeader(header string, opts csvmap.Options) (*csvmap.Codec[Record], error) {
	sep := opts.Separator
	if sep == "" {
		sep = csvmap.DefaultSeparator
	}
	rowTitle := opts.RowNumberTitle
	if rowTitle == "" {
		rowTitle = csvmap.DefaultRowNumberTitle
	}

	if strings.TrimSpace(header) == "" {
		return nil, fmt.Errorf("dynamic: blank header line")
	}

	cols := strings.Split(header, sep)
	fields := make([]csvmap.Field[Record], 0, len(cols))
	hasRowColumn := false

	for i, col := range cols {
		col = strings.TrimSpace(col)
		if i == 0 && strings.EqualFold(col, rowTitle) {
			hasRowColumn = true
			continue
		}
		name := col
		fields = append(fields, csvmap.Field[Record]{
			Name:  name,
			Order: len(fields) + 1,
			Kind:  csvmap.KindText,
			Get: func(r *Record) any {
				return r.Get(name)
			},
			Set: func(r *Record, v any) {
				if r.Values == nil {
					r.Values = make(map[string]string)
				}
				r.Values[name] = v.(string)
			},
		})
	}

	opts.OmitRowNumbers = !hasRowColumn
	return csvmap.New(fields, opts)
}

// Columns returns the data column titles of a header line, the
// row-number column excluded.
func Columns(header, sep, rowTitle string) []string {
	if sep == "" {
		sep = csvmap.DefaultSeparator
	}
	if rowTitle == "" {
		rowTitle = csvmap.DefaultRowNumberTitle
	}
	parts := strings.Split(header, sep)
	cols := make([]string, 0, len(parts))
	for i, col := range parts {
		col = strings.TrimSpace(col)
		if i == 0 && strings.EqualFold(col, rowTitle) {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}
