package builtin

import "booketl/pkg/records"

// Require drops records that lack a usable value for any listed field.
// Missing keys, nil, and empty strings all count as absent.
type Require struct {
	Fields []string
}

func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		if r.complete(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (r Require) complete(rec records.Record) bool {
	for _, f := range r.Fields {
		v, exists := rec[f]
		if !exists || v == nil || v == "" {
			return false
		}
	}
	return true
}
