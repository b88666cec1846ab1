package builtin

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"booketl/internal/schema"
	"booketl/pkg/records"
)

// Validate validates records against a schema.Contract. It precomputes
// per-field metadata once and reuses it on the hot path.
//
// Policy semantics:
//   - "strict": the first invalid record stops the run; Apply retains valid
//     records seen so far and records the failure for Err().
//   - "lenient": invalid records are dropped and reported via Reject.
type Validate struct {
	Contract   schema.Contract
	DateLayout string            // optional global fallback date layout
	Policy     string            // "strict" | "lenient"
	Reject     func(RejectedRow) // optional sink, called for every rejection

	metaOnce sync.Once
	meta     []fieldMeta

	err error
}

// RejectedRow describes a record dropped (or, under strict policy, the record
// that failed the run).
type RejectedRow struct {
	Raw    records.Record
	Reason string
	Stage  string
}

// fieldMeta captures hot-path data for a single contract field.
type fieldMeta struct {
	name      string
	kind      string // "int","float","bool","date","text"
	required  bool
	layout    string
	min, max  *float64
	exclusive bool
}

func (v *Validate) buildMeta() {
	v.metaOnce.Do(func() {
		v.meta = make([]fieldMeta, 0, len(v.Contract.Fields))
		for _, f := range v.Contract.Fields {
			layout := f.Layout
			if layout == "" {
				layout = v.DateLayout
			}
			v.meta = append(v.meta, fieldMeta{
				name:      f.Name,
				kind:      normalizeKind(f.Type),
				required:  f.Required,
				layout:    layout,
				min:       f.Min,
				max:       f.Max,
				exclusive: f.Exclusive,
			})
		}
	})
}

// Err returns the strict-policy failure recorded by the last Apply, if any.
func (v *Validate) Err() error { return v.err }

// Apply validates each record. Valid records are appended to a new slice.
func (v *Validate) Apply(in []records.Record) []records.Record {
	v.buildMeta()
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ok, reason := v.validateRecord(rec)
		if ok {
			out = append(out, rec)
			continue
		}
		if v.Reject != nil {
			v.Reject(RejectedRow{Raw: rec, Reason: reason, Stage: "validate"})
		}
		if v.Policy == "strict" {
			v.err = fmt.Errorf("validate: %s", reason)
			return out
		}
	}
	return out
}

// validateRecord checks one record against the precomputed field metadata.
func (v *Validate) validateRecord(r records.Record) (bool, string) {
	for i := range v.meta {
		fm := &v.meta[i]
		val, exists := r[fm.name]

		empty := !exists || val == nil || val == ""
		if empty {
			if fm.required {
				return false, fmt.Sprintf("required field %q missing", fm.name)
			}
			continue
		}

		switch fm.kind {
		case "int":
			n, ok := asInt(val)
			if !ok {
				return false, fmt.Sprintf("field %q: %v not an int", fm.name, val)
			}
			if reason := fm.checkRange(float64(n)); reason != "" {
				return false, reason
			}
		case "float":
			f, ok := asFloat(val)
			if !ok {
				return false, fmt.Sprintf("field %q: %v not a number", fm.name, val)
			}
			if reason := fm.checkRange(f); reason != "" {
				return false, reason
			}
		case "date":
			switch t := val.(type) {
			case time.Time:
				// already parsed
			case string:
				layout := fm.layout
				if layout == "" {
					layout = schema.Layout
				}
				if _, err := time.Parse(layout, t); err != nil {
					return false, fmt.Sprintf("field %q: %q not a date (layout %s)", fm.name, t, layout)
				}
			default:
				return false, fmt.Sprintf("field %q: type %T not date-convertible", fm.name, val)
			}
		case "bool":
			switch t := val.(type) {
			case bool:
			case string:
				if _, err := strconv.ParseBool(t); err != nil {
					return false, fmt.Sprintf("field %q: %q not a bool", fm.name, t)
				}
			default:
				return false, fmt.Sprintf("field %q: type %T not bool-convertible", fm.name, val)
			}
		}
	}
	return true, ""
}

// checkRange applies the contract's min/max bounds to a numeric value.
func (fm *fieldMeta) checkRange(f float64) string {
	if fm.min != nil {
		if fm.exclusive && f <= *fm.min {
			return fmt.Sprintf("field %q: %v must be > %v", fm.name, f, *fm.min)
		}
		if !fm.exclusive && f < *fm.min {
			return fmt.Sprintf("field %q: %v below minimum %v", fm.name, f, *fm.min)
		}
	}
	if fm.max != nil && f > *fm.max {
		return fmt.Sprintf("field %q: %v above maximum %v", fm.name, f, *fm.max)
	}
	return ""
}

// normalizeKind maps contract type strings onto the coarse kinds used by the
// validator.
func normalizeKind(t string) string {
	switch t {
	case "bigint", "int8", "integer", "int4", "int2", "int":
		return "int"
	case "float", "real", "double", "numeric", "decimal":
		return "float"
	case "boolean", "bool":
		return "bool"
	case "date", "timestamp", "datetime":
		return "date"
	default:
		return "text"
	}
}

// asInt accepts the integer shapes a record can hold after parsing/coercion.
func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// asFloat accepts the numeric shapes a record can hold after parsing/coercion.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}
