package csv

import (
	"strings"
	"testing"
)

func TestParse_HeaderNormalization(t *testing.T) {
	t.Parallel()

	in := "\ufeffTitle,Author Name,units_sold\nDune,Frank Herbert,12\n"
	p := NewParser(Options{HasHeader: true, TrimSpace: true})

	recs, skipped, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(recs) != 1 {
		t.Fatalf("rows = %d, want 1", len(recs))
	}

	rec := recs[0]
	if got := rec.String("title"); got != "Dune" {
		t.Errorf("title = %q (BOM not stripped from first header?)", got)
	}
	if got := rec.String("author_name"); got != "Frank Herbert" {
		t.Errorf("author_name = %q", got)
	}
	if got := rec.String("units_sold"); got != "12" {
		t.Errorf("units_sold = %q", got)
	}
}

func TestParse_HeaderMap(t *testing.T) {
	t.Parallel()

	in := "Book Title,Writer\nDune,Frank Herbert\n"
	p := NewParser(Options{
		HasHeader: true,
		HeaderMap: map[string]string{"Book Title": "title", "Writer": "author"},
	})

	recs, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := recs[0].String("title"); got != "Dune" {
		t.Errorf("title = %q", got)
	}
	if got := recs[0].String("author"); got != "Frank Herbert" {
		t.Errorf("author = %q", got)
	}
}

func TestParse_EmptyCellBecomesNil(t *testing.T) {
	t.Parallel()

	in := "title,rating\nDune,\n"
	p := NewParser(Options{HasHeader: true, TrimSpace: true})

	recs, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, ok := recs[0]["rating"]; !ok || v != nil {
		t.Fatalf("rating = %#v, want present nil", v)
	}
}

func TestParse_LenientSkipsRaggedRows(t *testing.T) {
	t.Parallel()

	in := "title,author\nDune,Frank Herbert\nonly-one-field\nEmma,Jane Austen\n"
	p := NewParser(Options{HasHeader: true})

	recs, skipped, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	if len(recs) != 2 {
		t.Fatalf("rows = %d, want 2", len(recs))
	}
}

func TestParse_StrictFailsWithLineNumber(t *testing.T) {
	t.Parallel()

	in := "title,author\nDune,Frank Herbert\nonly-one-field\n"
	p := NewParser(Options{HasHeader: true, Strict: true})

	_, _, err := p.Parse(strings.NewReader(in))
	if err == nil {
		t.Fatalf("expected error for ragged row under strict")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("error %q does not name the data row", err)
	}
}

func TestParse_NoHeaderSynthesizesColumns(t *testing.T) {
	t.Parallel()

	in := "Dune,Frank Herbert\n"
	p := NewParser(Options{ExpectedFields: 2})

	recs, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := recs[0].String("col_0"); got != "Dune" {
		t.Errorf("col_0 = %q", got)
	}
	if got := recs[0].String("col_1"); got != "Frank Herbert" {
		t.Errorf("col_1 = %q", got)
	}
}

func TestParse_CustomDelimiter(t *testing.T) {
	t.Parallel()

	in := "title;author\nDune;Frank Herbert\n"
	p := NewParser(Options{HasHeader: true, Comma: ';'})

	recs, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := recs[0].String("author"); got != "Frank Herbert" {
		t.Errorf("author = %q", got)
	}
}
