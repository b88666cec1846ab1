// Factory and DDL registration for the postgres backend.
package postgres

import (
	"context"
	"fmt"

	"booketl/internal/storage"
	pgddl "booketl/internal/storage/postgres/ddl"
)

// newRepository defaults to NewRepository; tests swap it to avoid opening a
// real connection pool.
var newRepository = NewRepository

// wrappedRepo adapts *postgres.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close closes the underlying connection pool.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("postgres",
		func(ctx context.Context, repo storage.Repository, cfg storage.Config) error {
			defs, err := pgddl.FromConfig(cfg)
			if err != nil {
				return fmt.Errorf("infer table definitions: %w", err)
			}
			return pgddl.EnsureTables(ctx, repo, defs)
		})
}
