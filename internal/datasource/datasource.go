// Package datasource defines where raw sales data comes from. Implementations
// hand the parser an io.ReadCloser; the caller owns the Close.
package datasource

import (
	"context"
	"io"
)

// Source opens a raw byte stream for one pipeline run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
