package sqlite

import (
	"context"
	"testing"
)

/*
Package-level test helpers (TB-aware)
*/

func newRepo(tb testing.TB) *Repository {
	tb.Helper()
	r, closeFn, err := NewRepository(context.Background(), Config{DSN: ":memory:"})
	if err != nil {
		tb.Fatalf("open sqlite :memory:: %v", err)
	}
	tb.Cleanup(closeFn)
	return r
}

func mustExec(tb testing.TB, r *Repository, sqlStmt string) {
	tb.Helper()
	if err := r.Exec(context.Background(), sqlStmt); err != nil {
		tb.Fatalf("exec %q: %v", sqlStmt, err)
	}
}

/*
Unit tests
*/

// TestNewRepository_EmptyDSN verifies that an empty DSN fails fast.
func TestNewRepository_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, _, err := NewRepository(context.Background(), Config{DSN: "  "})
	if err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

// TestCopyFromAndSelect inserts rows and reads them back.
func TestCopyFromAndSelect(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	ctx := context.Background()

	mustExec(t, r, `CREATE TABLE items (id INTEGER NOT NULL, label TEXT)`)

	n, err := r.CopyFrom(ctx, "items", []string{"id", "label"}, [][]any{
		{int64(1), "a"},
		{int64(2), "b"},
		{int64(3), nil},
	})
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 3 {
		t.Fatalf("CopyFrom inserted = %d, want 3", n)
	}

	rs, err := r.Select(ctx, `SELECT id, label FROM items ORDER BY id`)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got, want := len(rs.Columns), 2; got != want {
		t.Fatalf("columns = %d, want %d", got, want)
	}
	if got, want := len(rs.Rows), 3; got != want {
		t.Fatalf("rows = %d, want %d", got, want)
	}
	if rs.Rows[0][1] != "a" || rs.Rows[1][1] != "b" {
		t.Fatalf("unexpected values: %#v", rs.Rows)
	}
	if rs.Rows[2][1] != nil {
		t.Fatalf("expected NULL label, got %#v", rs.Rows[2][1])
	}
}

// TestCopyFrom_EmptyRows is a no-op and must not error.
func TestCopyFrom_EmptyRows(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	mustExec(t, r, `CREATE TABLE empty_ok (id INTEGER)`)

	n, err := r.CopyFrom(context.Background(), "empty_ok", []string{"id"}, nil)
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 0 {
		t.Fatalf("inserted = %d, want 0", n)
	}
}

// TestCopyFrom_RowWidthMismatch rejects ragged rows and rolls back the batch.
func TestCopyFrom_RowWidthMismatch(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	ctx := context.Background()
	mustExec(t, r, `CREATE TABLE ragged (id INTEGER, label TEXT)`)

	_, err := r.CopyFrom(ctx, "ragged", []string{"id", "label"}, [][]any{
		{int64(1), "ok"},
		{int64(2)},
	})
	if err == nil {
		t.Fatalf("expected error for ragged row")
	}

	rs, err := r.Select(ctx, `SELECT COUNT(*) FROM ragged`)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got := rs.Rows[0][0]; got != int64(0) {
		t.Fatalf("table not rolled back, count = %v", got)
	}
}

// TestExec_EmptyStatement is a no-op.
func TestExec_EmptyStatement(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	if err := r.Exec(context.Background(), "   "); err != nil {
		t.Fatalf("Exec empty: %v", err)
	}
}

// TestIdentQuoting covers embedded quotes and schema-qualified names.
func TestIdentQuoting(t *testing.T) {
	t.Parallel()

	if got, want := sqlIdent(`we"ird`), `"we""ird"`; got != want {
		t.Fatalf("sqlIdent = %q, want %q", got, want)
	}
	if got, want := sqlFQN(`main.book_sales`), `"main"."book_sales"`; got != want {
		t.Fatalf("sqlFQN = %q, want %q", got, want)
	}
}
