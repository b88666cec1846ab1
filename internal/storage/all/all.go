// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL bootstrappers with the
// storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "sqlite"   (booketl/internal/storage/sqlite)
//   - "postgres" (booketl/internal/storage/postgres)
//   - "mysql"    (booketl/internal/storage/mysql)
//   - "mssql"    (booketl/internal/storage/mssql)
//
// Typical usage (in cmd/booketl/main.go or a similar wiring layer):
//
//	import (
//	    _ "booketl/internal/storage/all" // enable all built-in backends
//
//	    "booketl/internal/storage"
//	)
//
//	repo, err := storage.New(ctx, storage.Config{
//	    Kind:       spec.Storage.Kind,
//	    DSN:        spec.Storage.DB.DSN,
//	    FactTable:  spec.Storage.DB.FactTable,
//	    DimTable:   spec.Storage.DB.DimTable,
//	    Columns:    spec.Storage.DB.Columns,
//	    DimColumns: spec.Storage.DB.DimColumns,
//	})
//
// This pattern keeps backend-specific wiring in a single, small package and
// allows the rest of the application (loader, analytics, CLI) to depend only
// on the storage abstraction rather than individual backends.
//
// Note: if you want a binary that supports only a subset of backends, you can
// define an alternative wiring package that imports only the required ones.
package all

import (
	_ "booketl/internal/storage/mssql"
	_ "booketl/internal/storage/mysql"
	_ "booketl/internal/storage/postgres"
	_ "booketl/internal/storage/sqlite"
)
