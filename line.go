package csvmap

// line.go is the per-line codec: one raw text line to one record and
// back. Decoding is tolerant by design — short rows produce partially
// populated records, unknown columns are skipped, and unparseable cells
// leave their field at the zero value. Encoding escapes embedded
// separator and newline characters before joining, so the output line
// can never contain a stray delimiter.

import (
	"strconv"
	"strings"
)

// fileColumns captures the column list of one file from its header
// line, normalized once so every data line can match against it.
func (c *Codec[T]) fileColumns(header string) []string {
	raw := strings.Split(header, c.opts.Separator)
	cols := make([]string, len(raw))
	for i, col := range raw {
		cols[i] = normalizeColumn(col)
	}
	return cols
}

// minColumns is the split width of an EOF sentinel row: the sole data
// column plus the row-number column when enabled.
func (c *Codec[T]) minColumns() int {
	if c.opts.rowNumbers() {
		return 2
	}
	return 1
}

// decodeLine parses one raw line against the file's column list.
// It returns nil for lines that produce no record: blank lines (while
// skipping is on) and the EOF sentinel row.
func (c *Codec[T]) decodeLine(line string, cols []string) *T {
	if strings.TrimSpace(line) == "" && !c.opts.KeepBlankLines {
		return nil
	}

	sep := c.opts.Separator
	parts := strings.Split(line, sep)
	if len(parts) == c.minColumns() && strings.TrimSpace(parts[len(parts)-1]) == eofSentinel {
		return nil
	}

	rec := new(T)

	start := 0
	if c.opts.rowNumbers() {
		// Index 0 is the row-number column; it never maps to a field.
		start = 1
	}

	for i := start; i < len(cols); i++ {
		if i >= len(parts) {
			// Short row: remaining fields keep their zero values.
			break
		}

		value := parts[i]
		if i == len(cols)-1 && len(parts) > len(cols) {
			// Unescaped separators leaked into the final free-text
			// column; rejoin the overflow.
			value = strings.Join(parts[i:], sep)
		}

		col := cols[i]
		if col == c.rowKey && !c.rowField {
			continue
		}
		f := c.resolveColumn(col)
		if f == nil || f.Set == nil {
			continue
		}

		if value == "" {
			// New records start at the zero value already.
			continue
		}

		value = strings.ReplaceAll(value, c.opts.SeparatorToken, sep)
		value = strings.ReplaceAll(value, c.opts.NewlineToken, "\n")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if v, ok := parseValue(f.Kind, value); ok {
			f.Set(rec, v)
		}
	}

	return rec
}

// encodeLine renders one record as one output line. rowNum is the
// record's 1-based position in the collection.
func (c *Codec[T]) encodeLine(rec *T, rowNum int) string {
	sep := c.opts.Separator
	vals := make([]string, 0, len(c.fields)+1)

	if c.opts.rowNumbers() {
		vals = append(vals, strconv.Itoa(rowNum))
	}

	for i := range c.fields {
		f := &c.fields[i]
		var s string
		if f.Get != nil {
			s = formatValue(f.Get(rec))
		}
		// Escape before joining so replaced tokens never reintroduce
		// separator or newline characters into the output.
		s = strings.ReplaceAll(s, "\r\n", c.opts.NewlineToken)
		s = strings.ReplaceAll(s, "\n", c.opts.NewlineToken)
		s = strings.ReplaceAll(s, sep, c.opts.SeparatorToken)
		vals = append(vals, s)
	}

	return strings.Join(vals, sep)
}
