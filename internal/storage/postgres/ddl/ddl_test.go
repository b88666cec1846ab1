package ddl

import (
	"strings"
	"testing"

	gddl "booketl/internal/ddl"
	"booketl/internal/storage"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"int", "BIGINT"},
		{"bigint", "BIGINT"},
		{"bool", "BOOLEAN"},
		{"float", "NUMERIC(12,2)"},
		{"numeric", "NUMERIC(12,2)"},
		{"date", "DATE"},
		{"timestamp", "TIMESTAMPTZ"},
		{"text", "TEXT"},
		{" Float ", "NUMERIC(12,2)"},
		{"unknown", "TEXT"},
	}
	for _, tt := range tests {
		if got := MapType(tt.in); got != tt.want {
			t.Errorf("MapType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		Name: "public.book_sales",
		Columns: []gddl.ColumnDef{
			{Name: "title", SQLType: "TEXT", Nullable: false},
			{Name: "price", SQLType: "NUMERIC(12,2)", Nullable: false},
			{Name: "day_of_week", SQLType: "TEXT", Nullable: true},
		},
	}
	stmt, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}

	for _, w := range []string{
		`CREATE TABLE IF NOT EXISTS "public"."book_sales"`,
		`"title" TEXT NOT NULL`,
		`"price" NUMERIC(12,2) NOT NULL`,
		`"day_of_week" TEXT`,
	} {
		if !strings.Contains(stmt, w) {
			t.Fatalf("statement %q missing %q", stmt, w)
		}
	}
	if strings.Contains(stmt, `"day_of_week" TEXT NOT NULL`) {
		t.Fatalf("nullable column rendered NOT NULL: %q", stmt)
	}
}

func TestBuildCreateTableSQL_Invalid(t *testing.T) {
	t.Parallel()

	cases := []gddl.TableDef{
		{Name: ""},
		{Name: "x"},
		{Name: "x", Columns: []gddl.ColumnDef{{Name: "", SQLType: "TEXT"}}},
		{Name: "x", Columns: []gddl.ColumnDef{{Name: "c", SQLType: ""}}},
	}
	for i, def := range cases {
		if _, err := BuildCreateTableSQL(def); err == nil {
			t.Errorf("case %d: expected error for %+v", i, def)
		}
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	defs, err := FromConfig(storage.Config{FactTable: "book_sales", DimTable: "dim_books"})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d tables, want 2", len(defs))
	}

	// ROUND(x, 2) needs NUMERIC on this backend.
	for _, c := range defs[0].Columns {
		switch c.Name {
		case "price", "revenue", "rating":
			if c.SQLType != "NUMERIC(12,2)" {
				t.Errorf("%s column type = %q, want NUMERIC(12,2)", c.Name, c.SQLType)
			}
		}
	}
}

func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	if got := quoteIdent(`book"sales`); got != `"book""sales"` {
		t.Errorf("quoteIdent = %q", got)
	}
}
