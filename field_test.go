package csvmap

import (
	"errors"
	"testing"
	"time"
)

// invoice is the shared test record type.
type invoice struct {
	Number   string
	Customer string
	Amount   float64
	Issued   time.Time
	Paid     bool
	Memo     string
}

// invoiceFields returns descriptors without explicit ordering; the
// active set is therefore sorted by field name.
func invoiceFields() []Field[invoice] {
	return []Field[invoice]{
		{
			Name: "Number", Kind: KindText,
			Get: func(r *invoice) any { return r.Number },
			Set: func(r *invoice, v any) { r.Number = v.(string) },
		},
		{
			Name: "Customer", Kind: KindText,
			Get: func(r *invoice) any { return r.Customer },
			Set: func(r *invoice, v any) { r.Customer = v.(string) },
		},
		{
			Name: "Amount", Kind: KindFloat,
			Get: func(r *invoice) any { return r.Amount },
			Set: func(r *invoice, v any) { r.Amount = v.(float64) },
		},
		{
			Name: "Issued", Kind: KindTime,
			Get: func(r *invoice) any { return r.Issued },
			Set: func(r *invoice, v any) { r.Issued = v.(time.Time) },
		},
		{
			Name: "Paid", Kind: KindBool,
			Get: func(r *invoice) any { return r.Paid },
			Set: func(r *invoice, v any) { r.Paid = v.(bool) },
		},
		{
			Name: "Memo", Kind: KindText,
			Get: func(r *invoice) any { return r.Memo },
			Set: func(r *invoice, v any) { r.Memo = v.(string) },
		},
	}
}

// orderedInvoiceFields returns descriptors with explicit titles and
// orders; only these fields participate, in Order sequence.
func orderedInvoiceFields() []Field[invoice] {
	fields := invoiceFields()
	for i := range fields {
		switch fields[i].Name {
		case "Number":
			fields[i].Title = "Invoice#"
			fields[i].Order = 1
		case "Amount":
			fields[i].Title = "Amount"
			fields[i].Order = 2
		}
	}
	return fields
}

func TestNewSortsByNameWithoutExplicitOrder(t *testing.T) {
	c, err := New(invoiceFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{"Amount", "Customer", "Issued", "Memo", "Number", "Paid"}
	fields := c.Fields()
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, name := range want {
		if fields[i].Name != name {
			t.Errorf("field %d: expected %s, got %s", i, name, fields[i].Name)
		}
	}
}

func TestNewKeepsOnlyOrderedFields(t *testing.T) {
	c, err := New(orderedInvoiceFields(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	fields := c.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 ordered fields, got %d", len(fields))
	}
	if fields[0].Name != "Number" || fields[1].Name != "Amount" {
		t.Errorf("unexpected order: %s, %s", fields[0].Name, fields[1].Name)
	}
}

func TestNewExcludesIgnoredFields(t *testing.T) {
	fields := invoiceFields()
	for i := range fields {
		if fields[i].Name == "Memo" {
			fields[i].Ignore = true
		}
	}

	c, err := New(fields, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, f := range c.Fields() {
		if f.Name == "Memo" {
			t.Error("ignored field survived resolution")
		}
	}
}

func TestNewExcludesRawFieldsByDefault(t *testing.T) {
	fields := append(invoiceFields(), Field[invoice]{
		Name: "Attachment", Kind: KindRaw,
		Set: func(r *invoice, v any) {},
	})

	c, err := New(fields, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, f := range c.Fields() {
		if f.Name == "Attachment" {
			t.Error("raw field survived with IncludeRawFields off")
		}
	}

	c, err = New(fields, Options{IncludeRawFields: true})
	if err != nil {
		t.Fatalf("New with IncludeRawFields: %v", err)
	}
	found := false
	for _, f := range c.Fields() {
		if f.Name == "Attachment" {
			found = true
		}
	}
	if !found {
		t.Error("raw field missing with IncludeRawFields on")
	}
}

func TestNewFailsWithNoFields(t *testing.T) {
	_, err := New([]Field[invoice]{}, Options{})
	if err == nil {
		t.Fatal("expected error for empty descriptor list")
	}

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
}

func TestNewFailsWithAllIgnored(t *testing.T) {
	fields := invoiceFields()
	for i := range fields {
		fields[i].Ignore = true
	}

	var fe *FormatError
	if _, err := New(fields, Options{}); !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
}

func TestNewFailsWithDuplicateTitles(t *testing.T) {
	fields := invoiceFields()
	for i := range fields {
		if fields[i].Name == "Customer" {
			fields[i].Title = "memo" // collides with Memo case-insensitively
		}
	}

	var fe *FormatError
	if _, err := New(fields, Options{}); !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError for duplicate titles, got %v", err)
	}
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Invoice#", want: "INVOICENUMBER"},
		{in: "  Unit Price ", want: "UNITPRICE"},
		{in: "name", want: "NAME"},
	}
	for _, tt := range tests {
		if got := normalizeColumn(tt.in); got != tt.want {
			t.Errorf("normalizeColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
