package csvmap

// decode.go is the deserialization driver: header validation, line
// splitting, keyword filtering, and concurrent per-line decoding with
// the original row order restored.

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Decode reads the whole stream and returns the decoded records in
// original row order.
//
// The header is taken from the first line unless Options.Header
// substitutes one (the first line is then data). It is validated
// against the codec's rendered header; a mismatch fails with a
// *FormatError before any row is decoded. When keywords are given,
// only lines containing at least one of them (case-insensitive
// substring) are decoded, de-duplicated in first-occurrence order.
//
// Lines decode concurrently across Options.Workers goroutines unless
// ForceSequential is set; both modes produce identical results.
func (c *Codec[T]) Decode(r io.Reader, keywords ...string) ([]*T, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csvmap: read input: %w", err)
	}
	lines := splitLines(string(data))

	header := c.opts.Header
	if header == "" {
		if len(lines) == 0 {
			return nil, &FormatError{Reason: "empty input, no header line"}
		}
		header = lines[0]
		lines = lines[1:]
	}

	if diff := c.HeaderDiff(header, c.Header()); diff != "" {
		return nil, &FormatError{Reason: "header mismatch", Missing: diff}
	}

	cols := c.fileColumns(header)
	lines = filterKeywords(lines, keywords)

	// One slot per line index; goroutines write disjoint slots, so no
	// lock is needed. Order is restored by construction.
	results := make([]*T, len(lines))

	if c.opts.ForceSequential || c.opts.Workers == 1 || len(lines) < 2 {
		for i, line := range lines {
			results[i] = c.decodeLine(line, cols)
		}
	} else {
		sem := make(chan struct{}, c.opts.Workers)
		var wg sync.WaitGroup
		for i := range lines {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				results[i] = c.decodeLine(lines[i], cols)
			}(i)
		}
		wg.Wait()
	}

	out := make([]*T, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

// DecodeFile opens path and decodes it. The file handle is closed on
// every exit path.
func (c *Codec[T]) DecodeFile(path string, keywords ...string) ([]*T, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvmap: open %s: %w", path, err)
	}
	defer f.Close()
	return c.Decode(f, keywords...)
}

// splitLines splits text on line breaks, tolerating both LF and CRLF.
// A trailing newline does not produce a phantom empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// filterKeywords retains only lines containing at least one keyword
// (case-insensitive substring), de-duplicated, preserving the relative
// order of first occurrence. An empty keyword list keeps every line.
func filterKeywords(lines []string, keywords []string) []string {
	if len(keywords) == 0 {
		return lines
	}

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			lowered = append(lowered, strings.ToLower(kw))
		}
	}
	if len(lowered) == 0 {
		return lines
	}

	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		lower := strings.ToLower(line)
		matched := false
		for _, kw := range lowered {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
