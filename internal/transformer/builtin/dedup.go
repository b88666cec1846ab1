// DeDup collapses duplicate records by a configured key. It runs in-memory on
// a single batch (slice) of records and is intended for exact-duplicate export
// rows (a re-exported sales file often repeats lines verbatim); it is NOT used
// for dimension derivation, which has its own first-seen grouping in the
// loader.
package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"booketl/pkg/records"
)

// DeDup implements a configurable, in-memory de-duplication policy.
type DeDup struct {
	// Keys are the field names that form the business key,
	// e.g. ["title","author","date"].
	Keys []string

	// Policy selects the winner among duplicates: "keep-first" (default) or
	// "keep-last".
	Policy string
}

// Apply executes the de-duplication and returns a slice containing only the
// winning record for each key, in first-occurrence order.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	policy := strings.ToLower(strings.TrimSpace(d.Policy))
	if policy == "" {
		policy = "keep-first"
	}

	type slot struct {
		rec   records.Record
		order int // first-occurrence position, preserved across keep-last
	}

	winners := make(map[uint64]slot, len(in))
	var passthrough []slot // records missing a key field; outside the de-dup domain
	n := 0

	for _, rec := range in {
		key, ok := d.keyOf(rec)
		if !ok {
			passthrough = append(passthrough, slot{rec: rec, order: n})
			n++
			continue
		}
		if prev, seen := winners[key]; seen {
			if policy == "keep-last" {
				winners[key] = slot{rec: rec, order: prev.order}
			}
			continue
		}
		winners[key] = slot{rec: rec, order: n}
		n++
	}

	out := make([]records.Record, n)
	for _, s := range winners {
		out[s.order] = s.rec
	}
	for _, s := range passthrough {
		out[s.order] = s.rec
	}
	return out
}

// keyOf hashes the composite key with xxh3. Field values are rendered with %v
// and joined with NUL separators so adjacent fields cannot collide.
func (d DeDup) keyOf(r records.Record) (uint64, bool) {
	var b strings.Builder
	for _, k := range d.Keys {
		v, ok := r[k]
		if !ok || v == nil {
			return 0, false
		}
		fmt.Fprintf(&b, "%v\x00", v)
	}
	return xxh3.HashString(b.String()), true
}
