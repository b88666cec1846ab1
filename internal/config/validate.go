package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"booketl/internal/schema"
)

// IssueSeverity classifies a validation finding.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single finding from ValidatePipeline. Path is a dotted path into
// the config ("storage.kind", "transform[1].options.contract").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// linter accumulates issues while walking a Pipeline.
type linter struct {
	issues []Issue
}

func (l *linter) errorf(path, format string, a ...any) {
	l.issues = append(l.issues, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, a...)})
}

func (l *linter) warnf(path, format string, a ...any) {
	l.issues = append(l.issues, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, a...)})
}

// ValidatePipeline statically lints a decoded Pipeline without mutating it.
// Callers decide whether warnings are fatal; the booketl binary only stops on
// errors.
func ValidatePipeline(p Pipeline) []Issue {
	l := &linter{}

	if strings.TrimSpace(p.Job) == "" {
		l.errorf("job", "job must not be empty; it is used for metrics labeling and identifying runs")
	}
	l.source(p.Source)
	l.parser(p.Parser)
	l.transforms(p.Transform)
	l.storage(p.Storage)
	l.runtime(p.Runtime)

	return l.issues
}

func (l *linter) source(s Source) {
	if strings.TrimSpace(s.Kind) == "" {
		l.errorf("source.kind", "source.kind must not be empty")
		return
	}
	// Unknown kinds warn rather than error so configs can name backends this
	// build does not compile in.
	if s.Kind != "file" {
		l.warnf("source.kind", "unknown source kind %q; ensure a matching implementation exists", s.Kind)
	}
	if s.Kind == "file" && strings.TrimSpace(s.File.Path) == "" {
		l.errorf("source.file.path", "file source requires a non-empty path")
	}
}

func (l *linter) parser(p Parser) {
	if strings.TrimSpace(p.Kind) == "" {
		l.errorf("parser.kind", "parser.kind must not be empty")
		return
	}
	if p.Kind != "csv" {
		l.warnf("parser.kind", "unknown parser kind %q; ensure a matching implementation exists", p.Kind)
	}
}

func (l *linter) transforms(ts []Transform) {
	if len(ts) == 0 {
		l.warnf("transform", "no transforms configured; raw parsed records will be loaded as-is")
		return
	}

	known := map[string]bool{
		"normalize": true, "coerce": true, "derive": true,
		"dedup": true, "require": true, "validate": true,
	}

	for i, t := range ts {
		kindPath := fmt.Sprintf("transform[%d].kind", i)
		if strings.TrimSpace(t.Kind) == "" {
			l.errorf(kindPath, "transform kind must not be empty")
			continue
		}
		if !known[t.Kind] {
			l.warnf(kindPath, "unknown transform kind %q; ensure a matching implementation exists", t.Kind)
		}

		switch t.Kind {
		case "validate":
			l.inlineContract(i, t.Options)
		case "dedup":
			if len(t.Options.StringSlice("keys")) == 0 {
				l.warnf(fmt.Sprintf("transform[%d].options.keys", i),
					"dedup transform has no keys; it will pass records through unchanged")
			}
		}
	}
}

// inlineContract checks an optional user-supplied validation contract. Absent
// means the built-in sales contract, which needs no linting.
func (l *linter) inlineContract(i int, opts Options) {
	raw := opts.Any("contract")
	if raw == nil {
		return
	}
	path := fmt.Sprintf("transform[%d].options.contract", i)

	b, err := json.Marshal(raw)
	if err != nil {
		l.errorf(path, "validate contract is not JSON-marshable: %v", err)
		return
	}
	var c schema.Contract
	if err := json.Unmarshal(b, &c); err != nil {
		l.errorf(path, "validate contract is not a valid schema.Contract: %v", err)
		return
	}
	if len(c.Fields) == 0 {
		l.warnf(path, "validate contract has no fields; it will not enforce anything")
	}
}

func (l *linter) storage(s Storage) {
	if strings.TrimSpace(s.Kind) == "" {
		l.errorf("storage.kind", "storage.kind must not be empty")
		return
	}
	switch s.Kind {
	case "sqlite", "postgres", "mysql", "mssql":
	default:
		l.warnf("storage.kind", "unknown storage kind %q; ensure a matching backend is registered", s.Kind)
	}

	db := s.DB
	if strings.TrimSpace(db.DSN) == "" {
		l.errorf("storage.db.dsn", "storage.db.dsn must not be empty")
	}
	if strings.TrimSpace(db.FactTable) == "" {
		l.errorf("storage.db.fact_table", "storage.db.fact_table must not be empty")
	}
	if strings.TrimSpace(db.DimTable) == "" {
		l.errorf("storage.db.dim_table", "storage.db.dim_table must not be empty")
	}
	if db.FactTable != "" && db.FactTable == db.DimTable {
		l.errorf("storage.db.dim_table", "fact_table and dim_table must name different tables")
	}
}

func (l *linter) runtime(r RuntimeConfig) {
	if r.BatchSize < 0 {
		l.errorf("runtime.batch_size", "batch_size must not be negative")
	}
	switch r.OnBadRow {
	case "", "abort", "skip":
	default:
		l.errorf("runtime.on_bad_row", "on_bad_row must be %q or %q, got %q", "abort", "skip", r.OnBadRow)
	}
}
