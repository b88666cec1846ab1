package transformer

import (
	"testing"

	"booketl/pkg/records"
)

// tagger appends its marker to a shared trace and stamps each record, so
// ordering and data flow through the chain can both be asserted.
type tagger struct {
	marker string
	trace  *[]string
}

func (t tagger) Apply(in []records.Record) []records.Record {
	*t.trace = append(*t.trace, t.marker)
	for _, r := range in {
		r["last"] = t.marker
	}
	return in
}

// dropFirst discards the first record of the batch.
type dropFirst struct{}

func (dropFirst) Apply(in []records.Record) []records.Record {
	if len(in) == 0 {
		return in
	}
	return in[1:]
}

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	c := Chain{
		tagger{marker: "a", trace: &trace},
		tagger{marker: "b", trace: &trace},
		tagger{marker: "c", trace: &trace},
	}

	out := c.Apply([]records.Record{{"title": "TitleA"}})

	if got := len(trace); got != 3 {
		t.Fatalf("stages run = %d, want 3", got)
	}
	for i, want := range []string{"a", "b", "c"} {
		if trace[i] != want {
			t.Errorf("stage %d = %q, want %q", i, trace[i], want)
		}
	}
	if got := out[0].String("last"); got != "c" {
		t.Errorf("last stamp = %q, want c (final stage)", got)
	}
}

func TestChain_StagesMayShrinkBatch(t *testing.T) {
	t.Parallel()

	c := Chain{dropFirst{}, dropFirst{}}
	out := c.Apply([]records.Record{
		{"title": "A"}, {"title": "B"}, {"title": "C"},
	})

	if len(out) != 1 || out[0].String("title") != "C" {
		t.Errorf("out = %v, want single record C", out)
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	in := []records.Record{{"title": "A"}}
	out := Chain{}.Apply(in)
	if len(out) != 1 {
		t.Errorf("empty chain changed the batch: %v", out)
	}
}
