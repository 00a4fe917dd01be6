// Package csvmap maps between CSV text and collections of typed records.
//
// A Codec is built once per record type from an explicit descriptor list
// (no reflection): each Field names a record field, an optional column
// title and serialization order, a value Kind, and accessor closures.
// The codec then decodes whole files into ordered record slices and
// encodes record slices back to files, handling:
//
//   - custom column ordering and naming via explicit field descriptors
//   - a synthetic leading row-number column
//   - header validation with order-sensitive or order-insensitive diffs
//   - escaping of separator and newline characters embedded in values
//   - an optional EOF sentinel row marking end of data
//   - concurrent per-line decoding with original order preserved
//
// Quoted fields per RFC 4180 are out of scope; embedded separators and
// line breaks are carried via replacement tokens instead.
package csvmap
