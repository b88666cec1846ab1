package schema

// Field describes a single column in a validation contract.
type Field struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"` // "int" | "float" | "text" | "bool" | "date"
	Required bool     `json:"required,omitempty"`
	Layout   string   `json:"layout,omitempty"` // date layout override
	Min      *float64 `json:"min,omitempty"`    // numeric lower bound (inclusive)
	Max      *float64 `json:"max,omitempty"`    // numeric upper bound (inclusive)
	Exclusive bool    `json:"exclusive_min,omitempty"` // Min is exclusive (e.g. price > 0)
}

// Contract is a named set of field rules applied by the validate transform
// and used by the DDL inference helpers to type destination columns.
type Contract struct {
	Name      string            `json:"name"`
	Fields    []Field           `json:"fields"`
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// FieldIndex returns the contract's fields keyed by name.
func (c Contract) FieldIndex() map[string]Field {
	idx := make(map[string]Field, len(c.Fields))
	for _, f := range c.Fields {
		idx[f.Name] = f
	}
	return idx
}

// RequiredFields returns the names of all required fields, in contract order.
func (c Contract) RequiredFields() []string {
	var req []string
	for _, f := range c.Fields {
		if f.Required {
			req = append(req, f.Name)
		}
	}
	return req
}
