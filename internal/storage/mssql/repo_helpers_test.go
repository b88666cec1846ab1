package mssql

import (
	"context"
	"testing"
)

func TestMsIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"book_sales", "[book_sales]"},
		{"weird]name", "[weird]]name]"},
		{"", "[]"},
	}
	for _, tt := range tests {
		if got := msIdent(tt.in); got != tt.want {
			t.Errorf("msIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMsFQN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"book_sales", "[book_sales]"},
		{"dbo.book_sales", "[dbo].[book_sales]"},
		{"db.dbo.dim_books", "[db].[dbo].[dim_books]"},
	}
	for _, tt := range tests {
		if got := msFQN(tt.in); got != tt.want {
			t.Errorf("msFQN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRepository_BadDSN(t *testing.T) {
	t.Parallel()

	_, _, err := NewRepository(context.Background(), Config{DSN: "://not-a-dsn"})
	if err == nil {
		t.Fatal("expected DSN parse error")
	}
}
