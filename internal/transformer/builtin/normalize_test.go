package builtin

import (
	"testing"

	"booketl/pkg/records"
)

func TestNormalize_TrimsAndTitleCases(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{"title": "  The Dragon's Call ", "author": "emma blackwood", "category": "fantasy"},
		{"title": "Quantum Dreams", "author": "SARAH OKAFOR", "category": "science fiction"},
	}

	out := Normalize{TitleFields: []string{"author", "category"}}.Apply(in)

	if got := out[0].String("title"); got != "The Dragon's Call" {
		t.Errorf("title = %q, want trimmed original casing", got)
	}
	if got := out[0].String("author"); got != "Emma Blackwood" {
		t.Errorf("author = %q", got)
	}
	if got := out[0].String("category"); got != "Fantasy" {
		t.Errorf("category = %q", got)
	}
	if got := out[1].String("category"); got != "Science Fiction" {
		t.Errorf("category = %q", got)
	}
	if got := out[1].String("author"); got != "Sarah Okafor" {
		t.Errorf("author = %q (upper input should still title-case)", got)
	}
	if got := out[1].String("title"); got != "Quantum Dreams" {
		t.Errorf("title = %q (NBSP not replaced)", got)
	}
}

func TestNormalize_LeavesNonStringsAlone(t *testing.T) {
	t.Parallel()

	in := []records.Record{{"units_sold": int64(5), "rating": 4.5, "missing": nil}}
	out := Normalize{}.Apply(in)

	if v, _ := out[0].Int("units_sold"); v != 5 {
		t.Errorf("units_sold = %v", v)
	}
	if v, _ := out[0].Float("rating"); v != 4.5 {
		t.Errorf("rating = %v", v)
	}
}
