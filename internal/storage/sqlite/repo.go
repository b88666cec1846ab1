// Package sqlite backs storage.Repository with an embedded SQLite database.
//
// SQLite has no COPY-style bulk path, so CopyFrom runs a prepared INSERT per
// row inside one transaction, which is close enough in throughput for the
// volumes this pipeline handles.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// cgo-free driver, keeps the binary portable.
	_ "modernc.org/sqlite"

	"booketl/internal/storage"
)

// Repository implements storage.Repository over database/sql.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the database named by cfg.DSN and verifies it with a
// short ping. The returned func closes the pool.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// A :memory: database is private to its connection. With more than one
	// connection in the pool each statement could land on a different empty
	// database, so the pool is pinned to a single connection.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db}, func() { db.Close() }, nil
}

// CopyFrom inserts rows into table transactionally. Any ragged row or driver
// error rolls back the entire batch.
func (r *Repository) CopyFrom(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	n, err := insertRows(ctx, tx, table, columns, rows)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return n, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) (int64, error) {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = sqlIdent(c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		sqlFQN(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var n int64
	for i, row := range rows {
		if len(row) != len(columns) {
			return n, fmt.Errorf("sqlite: row %d has %d values, want %d", i, len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return n, fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
		n++
	}
	return n, nil
}

// Select runs a read-only statement and materializes the full result.
func (r *Repository) Select(ctx context.Context, query string) (*storage.ResultSet, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: columns: %w", err)
	}

	rs := &storage.ResultSet{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return rs, nil
}

// Exec runs an arbitrary statement, usually DDL. Blank input is a no-op.
func (r *Repository) Exec(ctx context.Context, sqlStmt string) error {
	if strings.TrimSpace(sqlStmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sqlStmt); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

func sqlIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// sqlFQN quotes a possibly dotted name segment by segment.
func sqlFQN(fqn string) string {
	var out []string
	for _, p := range strings.Split(fqn, ".") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, sqlIdent(p))
		}
	}
	return strings.Join(out, ".")
}
