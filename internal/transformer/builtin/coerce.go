package builtin

import (
	"strconv"
	"time"

	"booketl/pkg/records"
)

// Coerce converts raw string values into typed ones in place. Values that fail
// to parse are left as strings; the validate transform decides their fate.
type Coerce struct {
	Types  map[string]string // field -> one of: int, float, bool, date, string
	Layout string            // date layout
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	for _, r := range in {
		for field, typ := range c.Types {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			switch typ {
			case "int":
				if i, err := strconv.ParseInt(s, 10, 64); err == nil {
					r[field] = i
				}
			case "float":
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					r[field] = f
				}
			case "bool":
				if b, err := strconv.ParseBool(s); err == nil {
					r[field] = b
				}
			case "date":
				if t, err := time.Parse(c.Layout, s); err == nil {
					r[field] = t
				}
			case "string":
				// already string
			}
		}
	}
	return in
}

// TypesFromContract builds a Coerce type map from contract field types, so a
// pipeline with a validate step does not have to repeat itself in a coerce
// step.
func TypesFromContract(fieldTypes map[string]string) map[string]string {
	out := make(map[string]string, len(fieldTypes))
	for name, t := range fieldTypes {
		switch t {
		case "int", "integer", "bigint":
			out[name] = "int"
		case "float", "real", "double", "numeric", "decimal":
			out[name] = "float"
		case "bool", "boolean":
			out[name] = "bool"
		case "date", "datetime", "timestamp":
			out[name] = "date"
		default:
			out[name] = "string"
		}
	}
	return out
}
