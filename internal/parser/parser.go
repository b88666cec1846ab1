package parser

import (
	"io"

	"booketl/pkg/records"
)

// Parser turns raw source bytes into records. The int return is the number of
// rows skipped under a lenient policy; strict parsers always return 0 or an
// error.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
