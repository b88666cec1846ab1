package config

import (
	"strings"
	"testing"
)

func validPipeline() Pipeline {
	return Pipeline{
		Job:    "book_sales",
		Source: Source{Kind: "file", File: SourceFile{Path: "data/raw_sales.csv"}},
		Parser: Parser{Kind: "csv"},
		Transform: []Transform{
			{Kind: "normalize"},
			{Kind: "coerce"},
			{Kind: "derive"},
			{Kind: "validate"},
		},
		Storage: Storage{
			Kind: "sqlite",
			DB: DBConfig{
				DSN:       ":memory:",
				FactTable: "book_sales",
				DimTable:  "dim_books",
			},
		},
		Runtime: RuntimeConfig{BatchSize: 500, OnBadRow: "abort"},
	}
}

func countBySeverity(issues []Issue) (errors, warnings int) {
	for _, iss := range issues {
		switch iss.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return
}

func hasIssueAt(issues []Issue, path string) bool {
	for _, iss := range issues {
		if iss.Path == path {
			return true
		}
	}
	return false
}

func TestValidatePipeline_Valid(t *testing.T) {
	t.Parallel()

	errors, _ := countBySeverity(ValidatePipeline(validPipeline()))
	if errors != 0 {
		t.Fatalf("valid pipeline produced %d errors: %v", errors, ValidatePipeline(validPipeline()))
	}
}

func TestValidatePipeline_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Pipeline)
		path   string
	}{
		{"empty job", func(p *Pipeline) { p.Job = " " }, "job"},
		{"empty source kind", func(p *Pipeline) { p.Source.Kind = "" }, "source.kind"},
		{"file source without path", func(p *Pipeline) { p.Source.File.Path = "" }, "source.file.path"},
		{"empty parser kind", func(p *Pipeline) { p.Parser.Kind = "" }, "parser.kind"},
		{"empty dsn", func(p *Pipeline) { p.Storage.DB.DSN = "" }, "storage.db.dsn"},
		{"missing fact table", func(p *Pipeline) { p.Storage.DB.FactTable = "" }, "storage.db.fact_table"},
		{"missing dim table", func(p *Pipeline) { p.Storage.DB.DimTable = "" }, "storage.db.dim_table"},
		{"fact and dim collide", func(p *Pipeline) { p.Storage.DB.DimTable = p.Storage.DB.FactTable }, "storage.db.dim_table"},
		{"negative batch size", func(p *Pipeline) { p.Runtime.BatchSize = -1 }, "runtime.batch_size"},
		{"bad on_bad_row", func(p *Pipeline) { p.Runtime.OnBadRow = "explode" }, "runtime.on_bad_row"},
		{"empty transform kind", func(p *Pipeline) { p.Transform[0].Kind = "" }, "transform[0].kind"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validPipeline()
			tt.mutate(&p)

			issues := ValidatePipeline(p)
			errors, _ := countBySeverity(issues)
			if errors == 0 {
				t.Fatalf("expected at least one error, got %v", issues)
			}
			if !hasIssueAt(issues, tt.path) {
				t.Fatalf("no issue at path %q: %v", tt.path, issues)
			}
		})
	}
}

func TestValidatePipeline_Warnings(t *testing.T) {
	t.Parallel()

	t.Run("unknown kinds warn instead of erroring", func(t *testing.T) {
		t.Parallel()

		p := validPipeline()
		p.Source.Kind = "s3"
		p.Parser.Kind = "parquet"
		p.Storage.Kind = "clickhouse"
		p.Transform = append(p.Transform, Transform{Kind: "funky"})

		issues := ValidatePipeline(p)
		errors, warnings := countBySeverity(issues)
		if errors != 0 {
			t.Fatalf("forward-compatible kinds must not error: %v", issues)
		}
		if warnings < 4 {
			t.Fatalf("warnings = %d, want at least 4: %v", warnings, issues)
		}
	})

	t.Run("dedup without keys warns", func(t *testing.T) {
		t.Parallel()

		p := validPipeline()
		p.Transform = append(p.Transform, Transform{Kind: "dedup"})

		issues := ValidatePipeline(p)
		found := false
		for _, iss := range issues {
			if iss.Severity == SeverityWarning && strings.Contains(iss.Message, "dedup") {
				found = true
			}
		}
		if !found {
			t.Fatalf("no dedup warning in %v", issues)
		}
	})

	t.Run("empty transform list warns", func(t *testing.T) {
		t.Parallel()

		p := validPipeline()
		p.Transform = nil

		issues := ValidatePipeline(p)
		if !hasIssueAt(issues, "transform") {
			t.Fatalf("no warning for empty transform list: %v", issues)
		}
	})
}

func TestValidatePipeline_InlineContract(t *testing.T) {
	t.Parallel()

	p := validPipeline()
	p.Transform = []Transform{{
		Kind:    "validate",
		Options: Options{"contract": map[string]any{"name": "x", "fields": []any{}}},
	}}

	issues := ValidatePipeline(p)
	found := false
	for _, iss := range issues {
		if strings.Contains(iss.Message, "no fields") {
			found = true
		}
	}
	if !found {
		t.Fatalf("empty inline contract did not warn: %v", issues)
	}
}
