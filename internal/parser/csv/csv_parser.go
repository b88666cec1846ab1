// Package csv turns delimited sales exports into records, one row at a time.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"booketl/pkg/records"
)

// Options configures parsing. Zero values select the defaults noted per field.
type Options struct {
	// HasHeader treats the first row as column names.
	HasHeader bool

	// Comma is the field delimiter; zero means ','.
	Comma rune

	// TrimSpace strips surrounding whitespace from every cell.
	TrimSpace bool

	// ExpectedFields fixes the row width when there is no header. With a
	// header the header width wins.
	ExpectedFields int

	// HeaderMap renames source headers to canonical keys before the default
	// normalization runs. Only consulted when HasHeader is set.
	HeaderMap map[string]string

	// Strict fails the whole parse on the first malformed row, with a
	// line-numbered error. Otherwise bad rows are skipped and counted.
	Strict bool
}

// Parser reads CSV input into records. A Parser may be reused across inputs
// but is not safe for concurrent use.
type Parser struct {
	opt Options
}

func NewParser(opt Options) *Parser {
	return &Parser{opt: opt}
}

const utf8BOM = "\ufeff"

// skipLogCap bounds how many skipped rows get logged in lenient mode.
const skipLogCap = 10

// Parse reads every row from r. It returns the parsed records and how many
// rows were dropped for syntax errors or width mismatches; under Strict that
// count stays zero because the first bad row aborts instead.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.TrimLeadingSpace = true
	// Width checks happen after each read; letting encoding/csv enforce them
	// would abort lenient parses on the first ragged row.
	cr.FieldsPerRecord = -1

	keys, err := p.columnKeys(cr)
	if err != nil {
		return nil, 0, err
	}

	var out []records.Record
	var skipped int
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}

		reason := ""
		if err != nil {
			reason = err.Error()
		} else if len(keys) > 0 && len(row) != len(keys) {
			reason = fmt.Sprintf("incorrect number of fields (expected %d, got %d)", len(keys), len(row))
		}
		if reason != "" {
			if p.opt.Strict {
				return nil, 0, fmt.Errorf("row %d: %s", line, reason)
			}
			if skipped < skipLogCap {
				log.Printf("skipping row %d: %s", line, reason)
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			key := fmt.Sprintf("col_%d", i)
			if i < len(keys) && keys[i] != "" {
				key = keys[i]
			}
			if val == "" {
				rec[key] = nil
			} else {
				rec[key] = val
			}
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// columnKeys resolves the record keys: canonicalized header names when a
// header row exists, synthetic col_N names when only a width is known, nil
// when neither.
func (p *Parser) columnKeys(cr *csv.Reader) ([]string, error) {
	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, fmt.Errorf("read csv header: %w", err)
		}
		keys := make([]string, len(h))
		for i, col := range h {
			keys[i] = p.canonicalKey(i, col)
		}
		return keys, nil
	}

	if p.opt.ExpectedFields > 0 {
		keys := make([]string, p.opt.ExpectedFields)
		for i := range keys {
			keys[i] = fmt.Sprintf("col_%d", i)
		}
		return keys, nil
	}
	return nil, nil
}

// canonicalKey turns one header cell into a record key: BOM stripped from the
// first cell, HeaderMap renames honored, everything else lowercased with
// spaces as underscores.
func (p *Parser) canonicalKey(i int, col string) string {
	c := strings.TrimSpace(col)
	if i == 0 {
		c = strings.TrimPrefix(c, utf8BOM)
	}
	if mapped, ok := p.opt.HeaderMap[c]; ok {
		return mapped
	}
	return strings.ReplaceAll(strings.ToLower(c), " ", "_")
}
