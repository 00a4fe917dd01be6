package csvmap

// field.go defines the per-type field descriptors and resolves them into
// the active field set a codec reads and writes.
//
// Descriptors are explicit: callers list {name, title, order, kind,
// accessors} per field instead of relying on runtime type introspection.
// Resolution happens exactly once, at New, and the resulting set is
// immutable for the codec's lifetime.

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects the converter used for a field's values.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindUUID

	// KindRaw marks a field without a usable text representation
	// (nested structs, byte blobs). Raw fields are excluded from the
	// active set unless Options.IncludeRawFields is set; when included
	// their values pass through as plain text.
	KindRaw
)

// Field describes one column mapping for record type T.
type Field[T any] struct {
	// Name is the declared record field name. Columns are matched
	// against it when no field of the codec carries an explicit Order.
	Name string

	// Title overrides the column title in the header. Empty means Name.
	Title string

	// Order is the 1-based output position. When any field of a codec
	// has Order > 0, only fields with Order > 0 participate, sorted by
	// Order; all other fields drop out of the active set.
	Order int

	// Ignore excludes the field from mapping entirely.
	Ignore bool

	// Kind selects the value converter.
	Kind Kind

	// Get returns the field's current value for encoding. A nil Get
	// encodes the field as empty.
	Get func(rec *T) any

	// Set stores a converted value during decoding. The concrete type
	// matches Kind: string, int64, float64, bool, time.Time, uuid.UUID.
	// A nil Set leaves the field untouched.
	Set func(rec *T, v any)
}

// effectiveTitle returns the column title written to and expected in headers.
func (f *Field[T]) effectiveTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name
}

// Codec maps between CSV text and collections of T. Build one with New
// and reuse it; a Codec is safe for concurrent use once constructed.
type Codec[T any] struct {
	opts    Options
	fields  []Field[T]
	ordered bool

	// lookup tables keyed by normalized column name
	byTitle map[string]*Field[T]
	byName  map[string]*Field[T]

	// rowKey is the normalized row-number title; rowField reports
	// whether the record type declares a field with that exact name.
	rowKey   string
	rowField bool
}

// New resolves the descriptor list into a codec for T.
//
// Ignored fields and (by default) KindRaw fields are dropped. If any
// surviving field carries an explicit Order, the active set is exactly
// the ordered fields sorted by Order; otherwise it is all surviving
// fields sorted by Name. New fails with a *FormatError when the active
// set ends up empty or two fields share an effective title.
func New[T any](fields []Field[T], opts Options) (*Codec[T], error) {
	o := opts.withDefaults()

	kept := make([]Field[T], 0, len(fields))
	for _, f := range fields {
		if f.Ignore {
			continue
		}
		if f.Kind == KindRaw && !o.IncludeRawFields {
			continue
		}
		if f.Name == "" {
			continue
		}
		kept = append(kept, f)
	}

	ordered := false
	for _, f := range kept {
		if f.Order > 0 {
			ordered = true
			break
		}
	}

	if ordered {
		withOrder := kept[:0]
		for _, f := range kept {
			if f.Order > 0 {
				withOrder = append(withOrder, f)
			}
		}
		kept = withOrder
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Order < kept[j].Order })
	} else {
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	}

	if len(kept) == 0 {
		return nil, &FormatError{Reason: "record type has no mappable fields"}
	}

	c := &Codec[T]{
		opts:    o,
		fields:  kept,
		ordered: ordered,
		byTitle: make(map[string]*Field[T], len(kept)),
		byName:  make(map[string]*Field[T], len(kept)),
		rowKey:  normalizeColumn(o.RowNumberTitle),
	}

	seen := make(map[string]string, len(kept))
	for i := range c.fields {
		f := &c.fields[i]
		titleKey := normalizeColumn(f.effectiveTitle())
		if prev, dup := seen[titleKey]; dup {
			return nil, &FormatError{
				Reason: fmt.Sprintf("duplicate column title %q (fields %s and %s)", f.effectiveTitle(), prev, f.Name),
			}
		}
		seen[titleKey] = f.Name
		c.byTitle[titleKey] = f
		c.byName[normalizeColumn(f.Name)] = f
	}
	c.rowField = c.byName[c.rowKey] != nil

	return c, nil
}

// Options returns the codec's effective configuration, defaults applied.
func (c *Codec[T]) Options() Options {
	return c.opts
}

// Fields returns the active field set in serialization order.
func (c *Codec[T]) Fields() []Field[T] {
	out := make([]Field[T], len(c.fields))
	copy(out, c.fields)
	return out
}

// resolveColumn maps a normalized file column name to its field. With
// explicit ordering the match is by column title; otherwise by field
// name. Unknown columns resolve to nil and are skipped by the caller.
func (c *Codec[T]) resolveColumn(col string) *Field[T] {
	if c.ordered {
		return c.byTitle[col]
	}
	return c.byName[col]
}

// normalizeColumn canonicalizes a column name for matching: uppercase,
// internal spaces stripped, "#" spelled out so headers like "Invoice#"
// match a field named InvoiceNumber.
func normalizeColumn(col string) string {
	col = strings.ToUpper(strings.TrimSpace(col))
	col = strings.ReplaceAll(col, " ", "")
	return strings.ReplaceAll(col, "#", "NUMBER")
}
