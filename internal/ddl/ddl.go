// Package ddl defines a small, backend-agnostic model for SQL DDL. Backend
// packages (internal/storage/<kind>/ddl) adapt this model to their dialect:
// they quote identifiers, choose concrete column types, and add clauses such
// as IF NOT EXISTS.
package ddl

// ColumnDef describes a single column in a table definition.
//
// Name is the logical column name, unquoted; quoting happens at render time.
// SQLType is the dialect-specific type chosen by the backend's MapType.
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
}

// TableDef holds a table name and an ordered list of columns. The name may be
// dotted ("schema.table"); renderers quote each segment.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}

// ColumnNames returns the ordered column names of the definition.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
