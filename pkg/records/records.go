// Package records defines the loosely-typed row representation that flows
// between the parser, the transformer chain, and the loader.
//
// A Record maps canonical column names to values. Parsers populate Records
// with raw strings (or nil for empty cells); the coerce transform replaces
// string values with typed ones (int64, float64, time.Time) in place.
package records

import "time"

// Record is a single parsed row keyed by canonical column name.
type Record map[string]any

// String returns the string value for key, or "" when the key is missing,
// nil, or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Int returns the integer value for key. It accepts int and int64 (the
// coerce transform stores int64). The second return reports presence of a
// usable value.
func (r Record) Int(key string) (int64, bool) {
	switch n := r[key].(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

// Float returns the float value for key. Integer values are widened so that
// callers can treat numeric columns uniformly.
func (r Record) Float(key string) (float64, bool) {
	switch n := r[key].(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Time returns the time value for key when the coerce transform has parsed it.
func (r Record) Time(key string) (time.Time, bool) {
	if t, ok := r[key].(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
