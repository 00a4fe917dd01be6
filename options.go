package csvmap

import "runtime"

// Defaults for the configurable codec surface. The replacement tokens are
// non-ASCII placeholders chosen because they never occur in normal data.
const (
	DefaultSeparator      = ","
	DefaultNewlineToken   = "␤" // SYMBOL FOR NEWLINE
	DefaultSeparatorToken = "␟" // SYMBOL FOR UNIT SEPARATOR
	DefaultRowNumberTitle = "RowNumber"
)

// eofSentinel is the literal data value of the optional trailing
// end-of-file row. Sentinel rows are never returned as records.
const eofSentinel = "EOF"

// Options configures a Codec. The zero value is ready to use: comma
// separator, blank lines skipped, raw fields excluded, row numbers
// emitted, EOF sentinel off.
type Options struct {
	// Separator is the field separator, a single character (default ",").
	Separator string

	// KeepBlankLines decodes blank lines instead of skipping them.
	KeepBlankLines bool

	// IncludeRawFields keeps KindRaw fields in the active field set.
	IncludeRawFields bool

	// NewlineToken replaces literal line breaks inside field values.
	NewlineToken string

	// SeparatorToken replaces literal separator characters inside field values.
	SeparatorToken string

	// RowNumberTitle is the header title of the synthetic row-number column.
	RowNumberTitle string

	// EmitEOF appends the EOF sentinel row when encoding.
	EmitEOF bool

	// OmitRowNumbers drops the leading row-number column on both sides.
	OmitRowNumbers bool

	// Header, when set, is used as the file header instead of the first
	// line of input. The first line is then treated as data.
	Header string

	// ForceSequential decodes lines one at a time. Useful when stepping
	// through a decode in a debugger.
	ForceSequential bool

	// Workers caps concurrent line decodes (default: GOMAXPROCS).
	Workers int
}

// withDefaults fills unset options with their documented defaults.
func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.NewlineToken == "" {
		o.NewlineToken = DefaultNewlineToken
	}
	if o.SeparatorToken == "" {
		o.SeparatorToken = DefaultSeparatorToken
	}
	if o.RowNumberTitle == "" {
		o.RowNumberTitle = DefaultRowNumberTitle
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// rowNumbers reports whether the synthetic row-number column is in use.
func (o *Options) rowNumbers() bool {
	return !o.OmitRowNumbers
}
