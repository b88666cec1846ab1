// Package file reads pipeline input from the local filesystem.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens a single file from disk. The zero value is not usable; construct
// it with NewLocal.
type Local struct {
	path string
}

// NewLocal binds a source to path. The file is not touched until Open.
func NewLocal(path string) *Local {
	return &Local{path: path}
}

// Open returns the file as a ReadCloser. A context that is already done short
// circuits before any filesystem access. The error wraps the underlying
// os error, so errors.Is(err, os.ErrNotExist) still works for callers.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
