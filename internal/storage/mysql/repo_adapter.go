// Factory and DDL registration for the mysql backend.
package mysql

import (
	"context"
	"fmt"

	"booketl/internal/storage"
	myddl "booketl/internal/storage/mysql/ddl"
)

// newRepository defaults to NewRepository; tests swap it to avoid dialing a
// real server.
var newRepository = NewRepository

// wrappedRepo gives *Repository the Close method storage.Repository wants.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mysql",
		func(ctx context.Context, repo storage.Repository, cfg storage.Config) error {
			defs, err := myddl.FromConfig(cfg)
			if err != nil {
				return fmt.Errorf("infer table definitions: %w", err)
			}
			return myddl.EnsureTables(ctx, repo, defs)
		})
}
