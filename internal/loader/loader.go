// Package loader writes transformed sale records into the fact and dimension
// tables through a storage.Repository. Fact rows are flushed in batches using
// the backend's bulk insert; dimension rows are derived from the loaded facts
// and written in a single pass.
//
// Logging: on every successful flush, a concise progress line is emitted with
// running totals and instantaneous rows/sec since the previous flush.
package loader

import (
	"context"
	"fmt"
	"log"
	"time"

	"booketl/internal/schema"
	"booketl/internal/storage"
	"booketl/pkg/records"
)

// Stats summarizes a completed load.
type Stats struct {
	FactRows int64
	DimRows  int64
	Batches  int64
}

// Loader writes records into a fact table and derives the book dimension.
type Loader struct {
	Repo       storage.Repository
	FactTable  string
	DimTable   string
	Columns    []string
	DimColumns []string
	BatchSize  int

	// DateLayout renders time.Time values for the date column.
	// Defaults to schema.Layout.
	DateLayout string
}

// Load inserts the fact rows in batches, then derives and inserts the
// dimension rows. It returns after the first failed flush; rows from earlier
// batches stay committed, which is why the DDL bootstrap recreates both
// tables before each run.
func (l *Loader) Load(ctx context.Context, recs []records.Record) (Stats, error) {
	var stats Stats

	if l.Repo == nil {
		return stats, fmt.Errorf("loader: repository must not be nil")
	}
	batchSize := l.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	columns := l.Columns
	if len(columns) == 0 {
		columns = schema.FactColumns
	}
	dimColumns := l.DimColumns
	if len(dimColumns) == 0 {
		dimColumns = schema.DimColumns
	}
	layout := l.DateLayout
	if layout == "" {
		layout = schema.Layout
	}

	var (
		batch       = make([][]any, 0, batchSize)
		start       = time.Now()
		lastFlushTS = start
		lastTotal   int64
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := l.Repo.CopyFrom(ctx, l.FactTable, columns, batch)
		stats.FactRows += n

		// Reuse allocated slice; keep capacity to avoid churn.
		batch = batch[:0]

		if err != nil {
			log.Printf("loader: bulk insert failed after=%d total=%d err=%v", n, stats.FactRows, err)
			return err
		}

		stats.Batches++
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		insertedSinceLast := stats.FactRows - lastTotal
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(insertedSinceLast) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			stats.Batches,
			rps,
			n,
			stats.FactRows,
			now.Sub(start).Truncate(time.Millisecond),
		)
		lastFlushTS = now
		lastTotal = stats.FactRows

		return nil
	}

	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row, err := rowFromRecord(rec, columns, layout)
		if err != nil {
			return stats, fmt.Errorf("loader: record %d: %w", i, err)
		}
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	dimRows := BuildDimensionRows(recs, dimColumns)
	if len(dimRows) > 0 {
		n, err := l.Repo.CopyFrom(ctx, l.DimTable, dimColumns, dimRows)
		stats.DimRows = n
		if err != nil {
			return stats, fmt.Errorf("loader: dimension insert: %w", err)
		}
	}

	log.Printf("loader: done fact_rows=%d dim_rows=%d batches=%d elapsed=%s",
		stats.FactRows, stats.DimRows, stats.Batches, time.Since(start).Truncate(time.Millisecond))

	return stats, nil
}

// BuildDimensionRows derives one dimension row per distinct (title, author)
// pair, preserving first-occurrence order. When the same pair appears with
// different categories, the first category seen wins.
func BuildDimensionRows(recs []records.Record, dimColumns []string) [][]any {
	type key struct{ title, author string }

	seen := make(map[key]struct{}, len(recs))
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		k := key{title: rec.String("title"), author: rec.String("author")}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		row := make([]any, len(dimColumns))
		for i, col := range dimColumns {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	return rows
}

// rowFromRecord projects a record onto the column order expected by the fact
// table. Dates are rendered with the configured layout so every backend sees
// the same canonical value.
func rowFromRecord(rec records.Record, columns []string, layout string) ([]any, error) {
	row := make([]any, len(columns))
	for i, col := range columns {
		v, ok := rec[col]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
		if t, isTime := v.(time.Time); isTime {
			v = t.Format(layout)
		}
		row[i] = v
	}
	return row, nil
}
