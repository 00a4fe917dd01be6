package csvmap

// convert.go holds the typed parse/format functions dispatched on a
// field's Kind tag.
//
// Parsing handles the messy reality of hand-maintained CSV data:
//   - multiple date formats (US, EU, ISO) with 2-digit year pivoting
//   - currency symbols and thousands separators in numbers
//   - accounting-style negatives ("(123.45)")
//   - various boolean spellings (yes/no, true/false, t/f, 1/0)
//
// A value that fails to parse leaves the target field at its zero value;
// individual cells never abort a decode.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// numericRegex validates a numeric string after cleanup. Matches
// integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years
// that would land more than this many years in the future are assumed
// to belong to the previous century.
var TwoDigitYearPivot = 20

// timeLayout is the canonical date format written on encode.
const timeLayout = "2006-01-02"

// Date layouts split by year width for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// parseValue converts a trimmed, unescaped cell into the native value
// for kind. The second return reports whether the cell was usable.
func parseValue(kind Kind, s string) (any, bool) {
	switch kind {
	case KindText, KindRaw:
		return s, true
	case KindInt:
		return parseInt(s)
	case KindFloat:
		return parseFloat(s)
	case KindBool:
		return parseBool(s)
	case KindTime:
		return parseTime(s)
	case KindUUID:
		u, err := uuid.Parse(s)
		if err != nil {
			return nil, false
		}
		return u, true
	}
	return nil, false
}

// formatValue renders a field value as CSV text. Nil and zero times
// render as empty strings so optional fields round-trip cleanly.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(timeLayout)
	case uuid.UUID:
		if val == uuid.Nil {
			return ""
		}
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// parseInt accepts plain integers with optional thousands separators.
func parseInt(s string) (int64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// parseFloat accepts decimals with currency symbols, thousands
// separators, and accounting-format negatives.
func parseFloat(s string) (float64, bool) {
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseBool accepts the common spellings: true/false, t/f, yes/no, y/n, 1/0.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	default:
		return false, false
	}
}

// parseTime tries 4-digit year layouts first (unambiguous), then
// 2-digit layouts with the pivot year adjustment.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}
