// Package prompush reports pipeline metrics to a Prometheus Pushgateway.
//
// A push model fits this program better than a scrape endpoint: the process
// runs one load and exits, usually before a scraper would ever reach it. All
// client_golang usage lives here; the rest of the pipeline talks to the
// backend-neutral metrics package only.
package prompush

import (
	"fmt"

	"booketl/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend accumulates counters and summaries in a private registry and ships
// them to the gateway on Flush.
type Backend struct {
	gatewayURL string
	jobName    string // Pushgateway grouping key
	reg        *prometheus.Registry

	stepCounter   *prometheus.CounterVec
	stepDuration  *prometheus.SummaryVec
	recordCounter *prometheus.CounterVec
	batchCounter  prometheus.Counter
}

// NewBackend builds a backend pushing to gatewayURL under the given job name.
// An empty jobName falls back to "booketl"; an empty gatewayURL is an error.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "booketl"
	}

	// The job dimension comes from the push grouping key, so the collectors
	// themselves only carry step, status and kind labels.
	b := &Backend{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		reg:        prometheus.NewRegistry(),
		stepCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booketl_step_total",
			Help: "Pipeline step executions by step and status.",
		}, []string{"step", "status"}),
		stepDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "booketl_step_duration_seconds",
			Help:       "Pipeline step wall time in seconds, by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"step", "status"}),
		recordCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booketl_records_total",
			Help: "Row counts by kind (extracted, parse_skipped, fact_inserted, ...).",
		}, []string{"kind"}),
		batchCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booketl_batches_total",
			Help: "Bulk-insert batches flushed during this run.",
		}),
	}

	for _, c := range []prometheus.Collector{
		b.stepCounter, b.stepDuration, b.recordCounter, b.batchCounter,
	} {
		if err := b.reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}
	return b, nil
}

// IncCounter routes a named counter increment to the matching collector.
// Names this backend does not know are dropped silently, as are increments on
// a zero-value Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "booketl_step_total":
		if b.stepCounter != nil {
			b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
		}
	case "booketl_records_total":
		if b.recordCounter != nil {
			b.recordCounter.WithLabelValues(labels["kind"]).Add(delta)
		}
	case "booketl_batches_total":
		if b.batchCounter != nil {
			b.batchCounter.Add(delta)
		}
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "booketl_step_duration_seconds" || b.stepDuration == nil {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
}

// Flush pushes everything gathered so far to the gateway in one request.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push()
}
