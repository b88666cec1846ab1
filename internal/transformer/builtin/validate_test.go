package builtin

import (
	"strings"
	"testing"
	"time"

	"booketl/internal/schema"
	"booketl/pkg/records"
)

func validSale() records.Record {
	return records.Record{
		"title":      "The Dragon's Call",
		"author":     "Emma Blackwood",
		"category":   "Fantasy",
		"date":       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"units_sold": int64(12),
		"revenue":    179.88,
		"price":      14.99,
		"rating":     4.5,
	}
}

func TestValidate_LenientDropsAndReports(t *testing.T) {
	t.Parallel()

	bad := validSale()
	delete(bad, "author")

	var rejected []RejectedRow
	v := &Validate{
		Contract: schema.SalesContract(),
		Policy:   "lenient",
		Reject:   func(r RejectedRow) { rejected = append(rejected, r) },
	}

	out := v.Apply([]records.Record{validSale(), bad, validSale()})

	if len(out) != 2 {
		t.Fatalf("rows = %d, want 2", len(out))
	}
	if err := v.Err(); err != nil {
		t.Fatalf("lenient policy recorded error: %v", err)
	}
	if len(rejected) != 1 {
		t.Fatalf("rejections = %d, want 1", len(rejected))
	}
	if !strings.Contains(rejected[0].Reason, "author") {
		t.Errorf("reason %q does not name the field", rejected[0].Reason)
	}
	if rejected[0].Stage != "validate" {
		t.Errorf("stage = %q", rejected[0].Stage)
	}
}

func TestValidate_StrictStopsAtFirstBadRecord(t *testing.T) {
	t.Parallel()

	bad := validSale()
	bad["units_sold"] = "a lot"

	v := &Validate{Contract: schema.SalesContract(), Policy: "strict"}
	out := v.Apply([]records.Record{validSale(), bad, validSale()})

	if len(out) != 1 {
		t.Fatalf("rows = %d, want records seen before the failure", len(out))
	}
	if v.Err() == nil {
		t.Fatalf("strict policy did not record an error")
	}
	if !strings.Contains(v.Err().Error(), "units_sold") {
		t.Errorf("error %q does not name the field", v.Err())
	}
}

func TestValidate_RangeRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(records.Record)
		reason string
	}{
		{
			name:   "negative units_sold",
			mutate: func(r records.Record) { r["units_sold"] = int64(-1) },
			reason: "below minimum",
		},
		{
			name:   "zero price fails exclusive minimum",
			mutate: func(r records.Record) { r["price"] = 0.0 },
			reason: "must be >",
		},
		{
			name:   "rating above five",
			mutate: func(r records.Record) { r["rating"] = 5.1 },
			reason: "above maximum",
		},
		{
			name:   "date string with wrong layout",
			mutate: func(r records.Record) { r["date"] = "01.02.2024" },
			reason: "not a date",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bad := validSale()
			tt.mutate(bad)

			var got string
			v := &Validate{
				Contract: schema.SalesContract(),
				Policy:   "lenient",
				Reject:   func(r RejectedRow) { got = r.Reason },
			}
			out := v.Apply([]records.Record{bad})
			if len(out) != 0 {
				t.Fatalf("invalid record passed validation")
			}
			if !strings.Contains(got, tt.reason) {
				t.Errorf("reason = %q, want substring %q", got, tt.reason)
			}
		})
	}
}

func TestValidate_BoundaryValuesPass(t *testing.T) {
	t.Parallel()

	edge := validSale()
	edge["units_sold"] = int64(0) // inclusive minimum
	edge["rating"] = 5.0          // inclusive maximum
	edge["revenue"] = 0.0

	v := &Validate{Contract: schema.SalesContract(), Policy: "strict"}
	out := v.Apply([]records.Record{edge})

	if len(out) != 1 {
		t.Fatalf("boundary record rejected: %v", v.Err())
	}
}

func TestValidate_OptionalFieldsMayBeAbsent(t *testing.T) {
	t.Parallel()

	r := validSale()
	// month/day_of_week/revenue are optional; revenue gets derived upstream
	// but its absence is not a contract violation.
	delete(r, "revenue")

	v := &Validate{Contract: schema.SalesContract(), Policy: "strict"}
	if out := v.Apply([]records.Record{r}); len(out) != 1 {
		t.Fatalf("record without optional fields rejected: %v", v.Err())
	}
}

func TestValidate_DateStringWithLayoutPasses(t *testing.T) {
	t.Parallel()

	r := validSale()
	r["date"] = "2024-01-31"

	v := &Validate{Contract: schema.SalesContract(), Policy: "strict"}
	if out := v.Apply([]records.Record{r}); len(out) != 1 {
		t.Fatalf("ISO date string rejected: %v", v.Err())
	}
}
