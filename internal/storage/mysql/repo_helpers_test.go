package mysql

import (
	"context"
	"testing"
)

func TestMyIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"book_sales", "`book_sales`"},
		{"weird`name", "`weird``name`"},
	}
	for _, tt := range tests {
		if got := myIdent(tt.in); got != tt.want {
			t.Errorf("myIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMyFQN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"book_sales", "`book_sales`"},
		{"bookstore.dim_books", "`bookstore`.`dim_books`"},
		{" bookstore . dim_books ", "`bookstore`.`dim_books`"},
	}
	for _, tt := range tests {
		if got := myFQN(tt.in); got != tt.want {
			t.Errorf("myFQN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRepository_EmptyDSN(t *testing.T) {
	t.Parallel()

	if _, _, err := NewRepository(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
