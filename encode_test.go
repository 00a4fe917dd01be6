package csvmap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEncodeBasic(t *testing.T) {
	c, err := New(fruitFields(), Options{OmitRowNumbers: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*fruitRow{{Name: "apple", Qty: 1}, {Name: "banana", Qty: 2}}
	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "Name,Qty\napple,1\nbanana,2\n"
	if buf.String() != want {
		t.Errorf("Encode output = %q, want %q", buf.String(), want)
	}
}

func TestEncodeRowNumbers(t *testing.T) {
	c, err := New(fruitFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*fruitRow{{Name: "apple", Qty: 1}, {Name: "banana", Qty: 2}}
	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "RowNumber,Name,Qty\n1,apple,1\n2,banana,2\n"
	if buf.String() != want {
		t.Errorf("Encode output = %q, want %q", buf.String(), want)
	}
}

func TestEncodeEOFSentinel(t *testing.T) {
	c, err := New(fruitFields(), Options{EmitEOF: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*fruitRow{{Name: "apple", Qty: 1}}
	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "RowNumber,Name,Qty\n1,apple,1\n2,EOF\n"
	if buf.String() != want {
		t.Errorf("Encode output = %q, want %q", buf.String(), want)
	}
}

func TestEncodeNilWriter(t *testing.T) {
	c, err := New(fruitFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Encode(nil, nil); !errors.Is(err, ErrNilWriter) {
		t.Errorf("expected ErrNilWriter, got %v", err)
	}
}

func TestEncodeEscapesSeparatorAndNewline(t *testing.T) {
	c, err := New(fruitFields(), Options{OmitRowNumbers: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*fruitRow{{Name: "red, ripe\napple", Qty: 3}}
	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("escaped value leaked a line break: %q", buf.String())
	}
	dataLine := lines[1]
	if got := strings.Count(dataLine, ","); got != 1 {
		t.Errorf("escaped value leaked separators, data line %q has %d commas", dataLine, got)
	}
	if !strings.Contains(dataLine, DefaultSeparatorToken) || !strings.Contains(dataLine, DefaultNewlineToken) {
		t.Errorf("replacement tokens missing from %q", dataLine)
	}
}

// ----------------------------------------------------------------------------
// Round trips
// ----------------------------------------------------------------------------

func TestRoundTrip(t *testing.T) {
	c, err := New(invoiceFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*invoice{
		{
			Number:   "INV-001",
			Customer: "Acme North",
			Amount:   1250.75,
			Issued:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Paid:     true,
			Memo:     "priority",
		},
		{
			Number:   "INV-002",
			Customer: "Borealis",
			Amount:   40,
			Issued:   time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
			Paid:     false,
			Memo:     "",
		},
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		want := records[i]
		rec := got[i]
		if rec.Number != want.Number || rec.Customer != want.Customer ||
			rec.Amount != want.Amount || rec.Paid != want.Paid || rec.Memo != want.Memo {
			t.Errorf("record %d round-tripped to %+v, want %+v", i, *rec, *want)
		}
		if !rec.Issued.Equal(want.Issued) {
			t.Errorf("record %d Issued = %v, want %v", i, rec.Issued, want.Issued)
		}
	}
}

func TestRoundTripEmbeddedSeparator(t *testing.T) {
	c, err := New(fruitFields(), Options{OmitRowNumbers: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	original := "granny smith, green\nsecond line"
	records := []*fruitRow{{Name: original, Qty: 5}}

	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != original {
		t.Errorf("Name = %q, want %q", got[0].Name, original)
	}
}

func TestRoundTripEOFSentinelExcluded(t *testing.T) {
	c, err := New(fruitFields(), Options{EmitEOF: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*fruitRow{{Name: "apple", Qty: 1}, {Name: "banana", Qty: 2}}
	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected sentinel row excluded, got %d records", len(got))
	}
}

func TestRoundTripOrderedCodec(t *testing.T) {
	c, err := New(orderedInvoiceFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*invoice{{Number: "INV-9", Amount: 12.5}}
	var buf bytes.Buffer
	if err := c.Encode(&buf, records); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Number != "INV-9" || got[0].Amount != 12.5 {
		t.Errorf("unexpected record %+v", *got[0])
	}
}

func TestEncodeFileDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruit.csv")

	c, err := New(fruitFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records := []*fruitRow{{Name: "apple", Qty: 1}}
	if err := c.EncodeFile(path, records); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	// EncodeFile truncates pre-existing content.
	if err := c.EncodeFile(path, records); err != nil {
		t.Fatalf("EncodeFile rewrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := "RowNumber,Name,Qty\n1,apple,1\n"; string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}

	got, err := c.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(got) != 1 || got[0].Name != "apple" {
		t.Errorf("unexpected records %+v", got)
	}

	if _, err := c.DecodeFile(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}
	if err := c.EncodeFile("", nil); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}
}
