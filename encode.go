package csvmap

// encode.go is the serialization driver. Encoding is sequential — one
// writer, one file — with rendered lines buffered and flushed in
// batches sized to roughly 10% of the record count. Batching amortizes
// I/O; it has no effect on the output bytes.

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Encode writes the header, one line per record in collection order,
// and the optional EOF sentinel row to w.
func (c *Codec[T]) Encode(w io.Writer, records []*T) error {
	if w == nil {
		return ErrNilWriter
	}

	batch := len(records) / 10
	if batch == 0 {
		batch = len(records)
	}
	if batch == 0 {
		batch = 1
	}

	var buf bytes.Buffer
	buf.WriteString(c.Header())
	buf.WriteByte('\n')

	pending := 0
	for i, rec := range records {
		buf.WriteString(c.encodeLine(rec, i+1))
		buf.WriteByte('\n')
		pending++
		if pending >= batch {
			if err := flush(w, &buf); err != nil {
				return err
			}
			pending = 0
		}
	}

	if c.opts.EmitEOF {
		if c.opts.rowNumbers() {
			buf.WriteString(strconv.Itoa(len(records) + 1))
			buf.WriteString(c.opts.Separator)
		}
		buf.WriteString(eofSentinel)
		buf.WriteByte('\n')
	}

	return flush(w, &buf)
}

// EncodeFile truncates any pre-existing file at path and writes the
// encoded records. The file handle is closed on every exit path.
func (c *Codec[T]) EncodeFile(path string, records []*T) error {
	if path == "" {
		return ErrEmptyPath
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvmap: create %s: %w", path, err)
	}
	if err := c.Encode(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csvmap: close %s: %w", path, err)
	}
	return nil
}

func flush(w io.Writer, buf *bytes.Buffer) error {
	if buf.Len() == 0 {
		return nil
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("csvmap: write output: %w", err)
	}
	buf.Reset()
	return nil
}
