package analytics

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"booketl/internal/storage"
)

// Report pairs a query with its materialized result.
type Report struct {
	Query  Query
	Result *storage.ResultSet
}

// Runner executes queries against a repository.
type Runner struct {
	Repo storage.Repository
}

// Run executes every query in order and returns one report per query. The
// first query failure aborts the run.
func (r *Runner) Run(ctx context.Context, queries []Query) ([]Report, error) {
	if r.Repo == nil {
		return nil, fmt.Errorf("analytics: repository must not be nil")
	}

	reports := make([]Report, 0, len(queries))
	for _, q := range queries {
		rs, err := r.Repo.Select(ctx, q.SQL)
		if err != nil {
			return reports, fmt.Errorf("analytics: query %q: %w", q.Name, err)
		}
		reports = append(reports, Report{Query: q, Result: rs})
	}
	return reports, nil
}

// Render writes a report as an aligned text table.
func Render(w io.Writer, rep Report) error {
	fmt.Fprintf(w, "--- %s ---\n", strings.ToUpper(strings.ReplaceAll(rep.Query.Name, "_", " ")))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rep.Result.Columns, "\t"))
	for _, row := range rep.Result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n\n", len(rep.Result.Rows))
	return nil
}

// formatCell renders a result value for display. Drivers hand back a mix of
// Go types depending on backend, so normalize the common ones.
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	case float64:
		return fmt.Sprintf("%.2f", t)
	case float32:
		return fmt.Sprintf("%.2f", t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}
