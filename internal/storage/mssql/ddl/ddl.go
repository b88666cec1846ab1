// Package ddl renders CREATE TABLE statements for the SQL Server backend.
package ddl

import (
	"context"
	"fmt"
	"strings"

	gddl "booketl/internal/ddl"
	"booketl/internal/storage"
)

// MapType maps a portable column type to a SQL Server column type.
func MapType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "int", "integer":
		return "BIGINT"
	case "bool", "boolean":
		return "BIT"
	case "float", "double", "numeric", "decimal":
		return "DECIMAL(12,2)"
	case "date":
		return "DATE"
	case "timestamp", "datetime":
		return "DATETIME2"
	default:
		return "NVARCHAR(255)"
	}
}

// FromConfig derives the fact and dimension table definitions from a storage
// config using SQL Server types.
func FromConfig(cfg storage.Config) ([]gddl.TableDef, error) {
	return gddl.SalesTables(cfg.FactTable, cfg.Columns, cfg.DimTable, cfg.DimColumns, MapType)
}

// BuildCreateTableSQL renders a CREATE TABLE statement for the definition.
// SQL Server has no CREATE TABLE IF NOT EXISTS, so EnsureTables drops first.
func BuildCreateTableSQL(def gddl.TableDef) (string, error) {
	if strings.TrimSpace(def.Name) == "" {
		return "", fmt.Errorf("mssql ddl: table name must not be empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("mssql ddl: table %q has no columns", def.Name)
	}

	lines := make([]string, 0, len(def.Columns)+1)
	var pk []string
	for _, col := range def.Columns {
		line := fmt.Sprintf("  %s %s", quoteIdent(col.Name), col.SQLType)
		if !col.Nullable {
			line += " NOT NULL"
		}
		lines = append(lines, line)
		if col.PrimaryKey {
			pk = append(pk, quoteIdent(col.Name))
		}
	}
	if len(pk) > 0 {
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(pk, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", quoteFQN(def.Name), strings.Join(lines, ",\n")), nil
}

// EnsureTables drops and recreates every table so each run starts from a
// clean slate.
func EnsureTables(ctx context.Context, repo storage.Repository, defs []gddl.TableDef) error {
	for _, def := range defs {
		drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteFQN(def.Name))
		if err := repo.Exec(ctx, drop); err != nil {
			return fmt.Errorf("drop table %s: %w", def.Name, err)
		}
		create, err := BuildCreateTableSQL(def)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, create); err != nil {
			return fmt.Errorf("create table %s: %w", def.Name, err)
		}
	}
	return nil
}

func quoteIdent(id string) string {
	return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]`
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
