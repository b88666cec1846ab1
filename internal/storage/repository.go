// Package storage contains storage-agnostic contracts and the backend
// factory. Concrete backends (sqlite, postgres, mysql, mssql) register
// themselves at init time; callers construct repositories through New and
// stay independent of any driver.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config carries everything a backend needs to open a repository for the
// two-table (fact + dimension) sales schema.
type Config struct {
	// Kind selects the backend: "sqlite", "postgres", "mysql", "mssql".
	Kind string

	// DSN is the backend connection string.
	DSN string

	// FactTable and DimTable are the destination table names.
	FactTable string
	DimTable  string

	// Columns and DimColumns are the ordered destination columns for bulk
	// inserts into the fact and dimension tables respectively.
	Columns    []string
	DimColumns []string
}

// ResultSet is a fully materialized query result: column names in select
// order plus the value rows. Result sizes here are teaching-scale, so no
// cursor/streaming API is offered.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Repository is the minimal backend contract used by the loader and the
// analytics runner.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to columns order) into table and
	// returns the number of rows inserted.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Select executes a read-only statement and materializes the result.
	Select(ctx context.Context, query string) (*ResultSet, error)

	// Exec executes an arbitrary statement (typically DDL).
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connection(s).
	Close()
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register records (or replaces) the factory for a storage kind. It is
// typically called from backend packages' init functions.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind using the registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
