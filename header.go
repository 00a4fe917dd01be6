package csvmap

import (
	"sort"
	"strings"
)

// Header renders the canonical header line for the codec: effective
// titles in active-set order, prefixed by the row-number title when row
// numbers are enabled.
func (c *Codec[T]) Header() string {
	titles := make([]string, 0, len(c.fields)+1)
	if c.opts.rowNumbers() {
		titles = append(titles, c.opts.RowNumberTitle)
	}
	for i := range c.fields {
		titles = append(titles, c.fields[i].effectiveTitle())
	}
	return strings.Join(titles, c.opts.Separator)
}

// HeaderDiff compares a file's actual header line against an expected
// one and returns the expected columns absent from the actual header,
// joined by the separator. An empty result signals a match.
//
// Both sides are compared case-insensitively. Without explicit field
// ordering the match is order-insensitive: both column lists are sorted
// and the actual columns additionally have internal whitespace stripped.
// With explicit ordering the match is positional, with only surrounding
// whitespace trimmed per column. The differing whitespace rules on the
// two branches are a compatibility behavior; callers relying on one
// branch must not assume the other normalizes the same way.
func (c *Codec[T]) HeaderDiff(actual, expected string) string {
	sep := c.opts.Separator
	act := strings.Split(strings.ToUpper(actual), sep)
	exp := strings.Split(strings.ToUpper(expected), sep)

	var missing []string

	if !c.ordered {
		for i := range act {
			act[i] = strings.ReplaceAll(strings.TrimSpace(act[i]), " ", "")
		}
		for i := range exp {
			exp[i] = strings.TrimSpace(exp[i])
		}
		sort.Strings(act)
		sort.Strings(exp)

		present := make(map[string]struct{}, len(act))
		for _, col := range act {
			present[col] = struct{}{}
		}
		for _, col := range exp {
			if _, ok := present[col]; !ok {
				missing = append(missing, col)
			}
		}
		return strings.Join(missing, sep)
	}

	for i, col := range exp {
		col = strings.TrimSpace(col)
		if i >= len(act) || strings.TrimSpace(act[i]) != col {
			missing = append(missing, col)
		}
	}
	return strings.Join(missing, sep)
}

// CheckHeader reports whether an actual header line matches the codec's
// own rendered header.
func (c *Codec[T]) CheckHeader(actual string) bool {
	return c.HeaderDiff(actual, c.Header()) == ""
}
