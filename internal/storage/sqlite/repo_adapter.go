// Factory and DDL registration for the sqlite backend. A blank import of
// storage/all is enough to make "sqlite" resolvable through storage.New.
package sqlite

import (
	"context"
	"fmt"

	"booketl/internal/storage"
	sqliteddl "booketl/internal/storage/sqlite/ddl"
)

// newRepository defaults to NewRepository; tests swap it to stand in a fake
// repository without opening a database.
var newRepository = NewRepository

// wrappedRepo gives *Repository the Close method storage.Repository wants,
// deferring to the cleanup func NewRepository handed back.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("sqlite",
		func(ctx context.Context, repo storage.Repository, cfg storage.Config) error {
			defs, err := sqliteddl.FromConfig(cfg)
			if err != nil {
				return fmt.Errorf("infer table definitions: %w", err)
			}
			return sqliteddl.EnsureTables(ctx, repo, defs)
		})
}
