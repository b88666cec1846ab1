// Package ddl renders CREATE TABLE statements for the MySQL backend.
package ddl

import (
	"context"
	"fmt"
	"strings"

	gddl "booketl/internal/ddl"
	"booketl/internal/storage"
)

// MapType maps a portable column type to a MySQL column type. Monetary
// amounts use DECIMAL(12,2) so ROUND(x, 2) and SUM stay exact. Text keys use
// VARCHAR(255) rather than TEXT so they remain indexable.
func MapType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "int", "integer":
		return "BIGINT"
	case "bool", "boolean":
		return "TINYINT(1)"
	case "float", "double", "numeric", "decimal":
		return "DECIMAL(12,2)"
	case "date":
		return "DATE"
	case "timestamp", "datetime":
		return "DATETIME"
	default:
		return "VARCHAR(255)"
	}
}

// FromConfig derives the fact and dimension table definitions from a storage
// config using MySQL types.
func FromConfig(cfg storage.Config) ([]gddl.TableDef, error) {
	return gddl.SalesTables(cfg.FactTable, cfg.Columns, cfg.DimTable, cfg.DimColumns, MapType)
}

// BuildCreateTableSQL renders a CREATE TABLE statement for the definition.
func BuildCreateTableSQL(def gddl.TableDef) (string, error) {
	if strings.TrimSpace(def.Name) == "" {
		return "", fmt.Errorf("mysql ddl: table name must not be empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("mysql ddl: table %q has no columns", def.Name)
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

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", quoteFQN(def.Name), strings.Join(lines, ",\n")), nil
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
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
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
