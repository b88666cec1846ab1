// Package ddl contains Postgres-specific DDL generation for the sales schema.
//
// NUMERIC is used for money and rating columns so that ROUND(value, 2) works
// without casts; Postgres rejects the two-argument ROUND on double precision.
package ddl

import (
	"context"
	"fmt"
	"strings"

	gddl "booketl/internal/ddl"
	"booketl/internal/storage"
)

// MapType maps a logical contract type into a Postgres column type.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "BIGINT"
	case "bool", "boolean":
		return "BOOLEAN"
	case "float", "double", "real", "numeric", "decimal":
		return "NUMERIC(12,2)"
	case "date":
		return "DATE"
	case "timestamp", "datetime":
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}

// FromConfig derives the Postgres-typed fact and dimension table definitions
// from the storage config.
func FromConfig(cfg storage.Config) ([]gddl.TableDef, error) {
	return gddl.SalesTables(cfg.FactTable, cfg.Columns, cfg.DimTable, cfg.DimColumns, MapType)
}

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for the given
// table definition.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		colName := strings.TrimSpace(c.Name)
		if colName == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", name)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("postgres ddl: column %s missing SQLType", colName)
		}
		def := quoteIdent(colName) + " " + typ
		if !c.Nullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteFQN(name),
		strings.Join(cols, ",\n  "),
	), nil
}

// EnsureTables drops and recreates each table so a run always starts from an
// empty store.
func EnsureTables(ctx context.Context, repo storage.Repository, defs []gddl.TableDef) error {
	for _, td := range defs {
		if err := repo.Exec(ctx, "DROP TABLE IF EXISTS "+quoteFQN(td.Name)+";"); err != nil {
			return fmt.Errorf("drop %s: %w", td.Name, err)
		}
		stmt, err := BuildCreateTableSQL(td)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", td.Name, err)
		}
	}
	return nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, quoteIdent(p))
		}
	}
	return strings.Join(out, ".")
}
