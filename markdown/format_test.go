package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/mdgrid/document"
)

const prices = `## Prices

| Item | Cost |
| ---- | ---- |
| a\|b | 3    |

- x
- y

end
`

func pricesDocument() *document.Document {
	d := document.New()
	d.Append(d.NewParagraph(""))
	d.Append(d.NewHeading(2, "Prices"))
	tbl := d.NewTable(2, 2)
	d.SetText(tbl.Child(0).Child(0), "Item")
	d.SetText(tbl.Child(0).Child(1), "Cost")
	d.SetText(tbl.Child(1).Child(0), "a|b")
	d.SetText(tbl.Child(1).Child(1), "3")
	d.Append(tbl)
	d.Append(d.NewListItem("x"))
	d.Append(d.NewListItem("y"))
	d.Append(d.NewParagraph("end"))
	return d
}

func TestFormat(t *testing.T) {
	var sb strings.Builder
	if err := Format(&sb, pricesDocument()); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if diff := cmp.Diff(prices, sb.String()); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCells(t *testing.T) {
	d := document.New()
	tbl := d.NewTable(3, 1)
	d.SetText(tbl.Child(0).Child(0), "A")
	d.SetText(tbl.Child(1).Child(0), "かな")
	d.SetText(tbl.Child(2).Child(0), "two\nlines")
	d.Append(tbl)

	want := "| A         |\n| --------- |\n| かな      |\n| two lines |\n"
	var sb strings.Builder
	if err := Format(&sb, d); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	var sb strings.Builder
	if err := Format(&sb, document.New()); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if sb.Len() != 0 {
		t.Errorf("Format of an empty document = %q", sb.String())
	}
}

func TestRoundTrip(t *testing.T) {
	d := document.New()
	if err := Parse(d, prices); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var sb strings.Builder
	if err := Format(&sb, d); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if diff := cmp.Diff(prices, sb.String()); diff != "" {
		t.Errorf("Format(Parse()) mismatch (-want +got):\n%s", diff)
	}
}
