// Package config holds the JSON-serializable pipeline model for booketl.
//
// A pipeline file (configs/*.json) decodes straight into Pipeline with
// encoding/json; there is no third-party configuration layer, only the small
// Options helper for the free-form parser and transform option bags.
//
// Example (trimmed):
//
//	{
//	  "job":      "book_sales",
//	  "source":   { "kind": "file", "file": { "path": "data/raw_sales.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true } },
//	  "transform":[
//	    { "kind": "normalize", "options": { "title_fields": ["author", "category"] } },
//	    { "kind": "coerce" },
//	    { "kind": "derive" },
//	    { "kind": "validate" }
//	  ],
//	  "storage":  { "kind": "sqlite", "db": { "dsn": "file:books.db", "fact_table": "book_sales", "dim_table": "dim_books" } }
//	}
package config

import "encoding/json"

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for metrics labels and log prefixes.
	Job string `json:"job"`

	Source    Source        `json:"source"`
	Parser    Parser        `json:"parser"`
	Transform []Transform   `json:"transform"`
	Storage   Storage       `json:"storage"`
	Runtime   RuntimeConfig `json:"runtime"`
}

// RuntimeConfig controls batching and the malformed-row policy.
type RuntimeConfig struct {
	// BatchSize is fact rows per insert batch; zero selects the default.
	BatchSize int `json:"batch_size"`

	// OnBadRow is "abort" (default, first bad row fails the run) or "skip"
	// (bad rows are counted, logged, and dropped).
	OnBadRow string `json:"on_bad_row"`
}

// Source selects where input bytes come from. Current kind: "file".
type Source struct {
	Kind string     `json:"kind"`
	File SourceFile `json:"file"`
}

// SourceFile configures the "file" source kind.
type SourceFile struct {
	Path string `json:"path"`
}

// Parser selects how raw bytes become records. Current kind: "csv", whose
// options include has_header, comma, trim_space, expected_fields, header_map.
type Parser struct {
	Kind    string  `json:"kind"`
	Options Options `json:"options"`
}

// Transform is one step in the transformation chain; each kind defines its
// own option shape.
type Transform struct {
	Kind    string  `json:"kind"`
	Options Options `json:"options"`
}

// Storage selects the backend that persists and serves the loaded tables.
type Storage struct {
	// Kind is "sqlite", "postgres", "mysql", or "mssql".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the fact + dimension table sink shared by all backends.
type DBConfig struct {
	// DSN is the backend connection string, e.g. "file:books.db" for SQLite.
	DSN string `json:"dsn"`

	FactTable string `json:"fact_table"`
	DimTable  string `json:"dim_table"`

	// Columns and DimColumns fix the insert-order column lists; empty means
	// the built-in sales schema order.
	Columns    []string `json:"columns"`
	DimColumns []string `json:"dim_columns"`
}

// Options is an untyped JSON object with typed accessors. Accessors return
// the given default when the key is absent or holds an unexpected type; they
// never panic.
type Options map[string]any

// String returns the string at key, or def.
func (o Options) String(key, def string) string {
	if s, ok := o[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the bool at key, or def.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Int returns the integer at key, or def. JSON numbers decode as float64, so
// both float64 and int values are accepted.
func (o Options) Int(key string, def int) int {
	switch n := o[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return def
}

// Rune returns the first rune of the string at key, or def. Used for
// single-character settings such as the CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if s, ok := o[key].(string); ok {
		for _, r := range s {
			return r
		}
	}
	return def
}

// StringMap returns the object at key as map[string]string, dropping
// non-string values. Missing or mistyped keys yield an empty map.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	m, ok := o[key].(map[string]any)
	if !ok {
		return res
	}
	for k, v := range m {
		if s, ok := v.(string); ok {
			res[k] = s
		}
	}
	return res
}

// StringSlice returns the array at key as []string, keeping only string
// elements. Missing or mistyped keys yield nil.
func (o Options) StringSlice(key string) []string {
	switch vv := o[key].(type) {
	case []any:
		out := make([]string, 0, len(vv))
		for _, x := range vv {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return vv
	}
	return nil
}

// Any returns the raw value at key, for nested blocks the caller unmarshals
// into a typed struct (e.g. an inline validation contract).
func (o Options) Any(key string) any {
	return o[key]
}

// UnmarshalJSON decodes missing or null options to a non-nil empty map, so
// call sites never nil-check.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
