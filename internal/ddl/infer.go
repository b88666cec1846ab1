package ddl

import (
	"fmt"

	"booketl/internal/schema"
)

// SalesTables derives the fact and dimension table definitions for the sales
// schema. Column types come from the sales contract through the backend's
// mapType; contract-required fields become NOT NULL. Dimension columns are
// always NOT NULL: the loader only emits complete dimension rows.
//
// Column lists default to the canonical schema order when empty.
func SalesTables(
	factTable string, factCols []string,
	dimTable string, dimCols []string,
	mapType func(string) string,
) ([]TableDef, error) {
	if factTable == "" || dimTable == "" {
		return nil, fmt.Errorf("ddl: fact and dimension table names are required")
	}
	if len(factCols) == 0 {
		factCols = schema.FactColumns
	}
	if len(dimCols) == 0 {
		dimCols = schema.DimColumns
	}

	idx := schema.SalesContract().FieldIndex()

	fact := TableDef{Name: factTable, Columns: make([]ColumnDef, 0, len(factCols))}
	for _, name := range factCols {
		f, known := idx[name]
		typ := "text"
		nullable := true
		if known {
			typ = f.Type
			nullable = !f.Required
		}
		fact.Columns = append(fact.Columns, ColumnDef{
			Name:     name,
			SQLType:  mapType(typ),
			Nullable: nullable,
		})
	}

	dim := TableDef{Name: dimTable, Columns: make([]ColumnDef, 0, len(dimCols))}
	for _, name := range dimCols {
		dim.Columns = append(dim.Columns, ColumnDef{
			Name:    name,
			SQLType: mapType("text"),
		})
	}

	return []TableDef{fact, dim}, nil
}
