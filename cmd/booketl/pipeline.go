package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"booketl/internal/analytics"
	"booketl/internal/config"
	"booketl/internal/datasource"
	"booketl/internal/datasource/file"
	"booketl/internal/loader"
	"booketl/internal/metrics"
	"booketl/internal/parser/csv"
	"booketl/internal/schema"
	"booketl/internal/storage"
	"booketl/internal/transformer"
	"booketl/internal/transformer/builtin"
	"booketl/pkg/records"
)

// thisMany caps example messages logged per rejection category.
const thisMany = 10

// Seams for tests: replaced to avoid touching the real filesystem or a real
// database.
var (
	newRepositoryFn = storage.New
	openSourceFn    = openSource
)

// run executes the pipeline end to end: extract, transform, load, analytics.
// Reports are rendered to out. Any stage error aborts the run with a message
// naming the failed stage.
func run(ctx context.Context, spec config.Pipeline, out io.Writer) error {
	job := spec.Job
	if job == "" {
		job = "booketl"
	}
	strict := spec.Runtime.OnBadRow != "skip"

	// Extract.
	stepStart := time.Now()
	recs, skipped, err := extract(ctx, spec, strict)
	metrics.RecordStep(job, "extract", err, time.Since(stepStart))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	extracted := len(recs)
	metrics.RecordRow(job, "extracted", int64(extracted))
	metrics.RecordRow(job, "parse_skipped", int64(skipped))
	log.Printf("extract: rows=%d skipped=%d", extracted, skipped)

	// Transform.
	stepStart = time.Now()
	recs, dropped, err := transform(spec, recs, strict)
	metrics.RecordStep(job, "transform", err, time.Since(stepStart))
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	metrics.RecordRow(job, "validate_dropped", dropped)
	log.Printf("transform: rows=%d dropped=%d", len(recs), dropped)

	// Open the store once; the loader and the query runner share the handle.
	// A per-stage connection would lose an in-memory SQLite database between
	// stages.
	storageCfg := storageConfig(spec)
	repo, err := newRepositoryFn(ctx, storageCfg)
	if err != nil {
		return fmt.Errorf("load: open repository: %w", err)
	}
	defer repo.Close()

	// Load.
	stepStart = time.Now()
	stats, err := load(ctx, repo, storageCfg, spec.Runtime.BatchSize, recs)
	metrics.RecordStep(job, "load", err, time.Since(stepStart))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	metrics.RecordRow(job, "fact_inserted", stats.FactRows)
	metrics.RecordRow(job, "dim_inserted", stats.DimRows)
	metrics.RecordBatches(job, stats.Batches)

	// Analytics.
	stepStart = time.Now()
	err = runAnalytics(ctx, repo, storageCfg, out)
	metrics.RecordStep(job, "analytics", err, time.Since(stepStart))
	if err != nil {
		return fmt.Errorf("analytics: %w", err)
	}

	log.Printf("summary: extracted=%d parse_skipped=%d dropped=%d fact_rows=%d dim_rows=%d batches=%d",
		extracted, skipped, dropped, stats.FactRows, stats.DimRows, stats.Batches)

	return nil
}

// extract opens the configured source and parses it into records.
func extract(ctx context.Context, spec config.Pipeline, strict bool) ([]records.Record, int, error) {
	src, err := openSourceFn(ctx, spec)
	if err != nil {
		return nil, 0, fmt.Errorf("source open: %w", err)
	}
	defer src.Close()

	switch spec.Parser.Kind {
	case "", "csv":
		opt := spec.Parser.Options
		p := csv.NewParser(csv.Options{
			HasHeader:      opt.Bool("has_header", true),
			Comma:          opt.Rune("comma", ','),
			TrimSpace:      opt.Bool("trim_space", true),
			ExpectedFields: opt.Int("expected_fields", 0),
			HeaderMap:      opt.StringMap("header_map"),
			Strict:         opt.Bool("strict", strict),
		})
		return p.Parse(src)
	default:
		return nil, 0, fmt.Errorf("unsupported parser.kind=%s", spec.Parser.Kind)
	}
}

// transform builds the configured chain and applies it. It returns the
// surviving records and the number of records dropped by validation.
func transform(spec config.Pipeline, recs []records.Record, strict bool) ([]records.Record, int64, error) {
	var dropped int64
	chain, validators, err := buildTransformers(spec.Transform, strict, &dropped)
	if err != nil {
		return nil, 0, err
	}

	out := chain.Apply(recs)

	for _, v := range validators {
		if err := v.Err(); err != nil {
			return nil, dropped, err
		}
	}
	return out, dropped, nil
}

// storageConfig resolves the storage.Config from the pipeline, applying the
// canonical table names when the config leaves them empty.
func storageConfig(spec config.Pipeline) storage.Config {
	factTable := spec.Storage.DB.FactTable
	if factTable == "" {
		factTable = "book_sales"
	}
	dimTable := spec.Storage.DB.DimTable
	if dimTable == "" {
		dimTable = "dim_books"
	}
	return storage.Config{
		Kind:       spec.Storage.Kind,
		DSN:        spec.Storage.DB.DSN,
		FactTable:  factTable,
		DimTable:   dimTable,
		Columns:    spec.Storage.DB.Columns,
		DimColumns: spec.Storage.DB.DimColumns,
	}
}

// load bootstraps the tables and runs the loader.
func load(ctx context.Context, repo storage.Repository, cfg storage.Config, batchSize int, recs []records.Record) (loader.Stats, error) {
	var stats loader.Stats

	if err := storage.EnsureTables(ctx, repo, cfg); err != nil {
		return stats, fmt.Errorf("apply DDL: %w", err)
	}

	l := &loader.Loader{
		Repo:       repo,
		FactTable:  cfg.FactTable,
		DimTable:   cfg.DimTable,
		Columns:    cfg.Columns,
		DimColumns: cfg.DimColumns,
		BatchSize:  batchSize,
	}
	return l.Load(ctx, recs)
}

// runAnalytics executes the report suite and renders each result.
func runAnalytics(ctx context.Context, repo storage.Repository, cfg storage.Config, out io.Writer) error {
	runner := &analytics.Runner{Repo: repo}
	reports, err := runner.Run(ctx, analytics.Queries(cfg.FactTable, cfg.DimTable, cfg.Kind))
	if err != nil {
		return err
	}
	for _, rep := range reports {
		if err := analytics.Render(out, rep); err != nil {
			return fmt.Errorf("render %q: %w", rep.Query.Name, err)
		}
	}
	return nil
}

// buildTransformers maps the transform config into a chain. strict selects
// the default validate policy; validators are returned so the caller can
// check for strict-policy failures after Apply.
func buildTransformers(ts []config.Transform, strict bool, dropped *int64) (transformer.Chain, []*builtin.Validate, error) {
	if len(ts) == 0 {
		ts = defaultTransforms()
	}

	defaultPolicy := "lenient"
	if strict {
		defaultPolicy = "strict"
	}

	var c transformer.Chain
	var validators []*builtin.Validate
	for _, t := range ts {
		switch t.Kind {
		case "normalize":
			fields := t.Options.StringSlice("title_fields")
			if fields == nil {
				fields = []string{"author", "category"}
			}
			c = append(c, builtin.Normalize{TitleFields: fields})

		case "coerce":
			types := t.Options.StringMap("types")
			if len(types) == 0 {
				types = builtin.TypesFromContract(contractTypes(schema.SalesContract()))
			}
			c = append(c, builtin.Coerce{
				Types:  types,
				Layout: t.Options.String("layout", schema.Layout),
			})

		case "derive":
			c = append(c, builtin.Derive{})

		case "dedup":
			c = append(c, builtin.DeDup{
				Keys:   t.Options.StringSlice("keys"),
				Policy: t.Options.String("policy", "keep-first"),
			})

		case "require":
			c = append(c, builtin.Require{
				Fields: t.Options.StringSlice("fields"),
			})

		case "validate":
			var rejectCount int
			v := &builtin.Validate{
				Contract:   schema.SalesContract(),
				DateLayout: t.Options.String("date_layout", schema.Layout),
				Policy:     t.Options.String("policy", defaultPolicy),
				Reject: func(r builtin.RejectedRow) {
					*dropped++
					rejectCount++
					if rejectCount <= thisMany {
						log.Printf("validate reject: %s | raw=%v", r.Reason, r.Raw)
					}
					if rejectCount == thisMany+1 {
						log.Printf("... additional rejections suppressed ...")
					}
				},
			}
			validators = append(validators, v)
			c = append(c, v)

		default:
			return nil, nil, fmt.Errorf("unsupported transformer.kind=%s", t.Kind)
		}
	}
	if c == nil {
		c = transformer.Chain{}
	}
	return c, validators, nil
}

// defaultTransforms is the canonical sales chain used when the config leaves
// the transform list empty.
func defaultTransforms() []config.Transform {
	return []config.Transform{
		{Kind: "normalize"},
		{Kind: "coerce"},
		{Kind: "derive"},
		{Kind: "validate"},
	}
}

// contractTypes flattens a contract into a field -> declared-type map.
func contractTypes(c schema.Contract) map[string]string {
	out := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		out[f.Name] = f.Type
	}
	return out
}

// openSource constructs the configured datasource.
func openSource(ctx context.Context, spec config.Pipeline) (io.ReadCloser, error) {
	var src datasource.Source
	switch spec.Source.Kind {
	case "", "file":
		src = file.NewLocal(spec.Source.File.Path)
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", spec.Source.Kind)
	}
	return src.Open(ctx)
}
