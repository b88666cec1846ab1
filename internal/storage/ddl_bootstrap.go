package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper is a backend-specific function that creates the fact and
// dimension tables for a run. Implementations drop any existing tables
// first: every pipeline run starts from empty tables (drop-and-reload, no
// incremental path).
//
// Backends register their implementation for a given storage kind at init
// time, mirroring the repository factory.
type DDLBootstrapper func(ctx context.Context, repo Repository, cfg Config) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTables locates the DDLBootstrapper for cfg.Kind and invokes it.
// Callers do not need to know which backend they are using.
func EnsureTables(ctx context.Context, repo Repository, cfg Config) error {
	ddlMu.RLock()
	fn, ok := ddlFns[cfg.Kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", cfg.Kind)
	}
	return fn(ctx, repo, cfg)
}
