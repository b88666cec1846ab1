package ddl

import (
	"context"
	"fmt"

	gddl "booketl/internal/ddl"
	"booketl/internal/storage"
)

// FromConfig derives the SQLite-typed fact and dimension table definitions
// from the storage config.
func FromConfig(cfg storage.Config) ([]gddl.TableDef, error) {
	return gddl.SalesTables(cfg.FactTable, cfg.Columns, cfg.DimTable, cfg.DimColumns, MapType)
}

// EnsureTables drops and recreates each table so a run always starts from an
// empty store. Loading twice without the drop would duplicate fact rows.
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
