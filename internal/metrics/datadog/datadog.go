// Package datadog emits pipeline metrics over the DogStatsD protocol.
//
// Labels become Datadog tags ("key:value"); counters map to Count and
// histograms to Histogram. Only this package imports the Datadog client, so
// the rest of the pipeline stays on the metrics.Backend abstraction.
package datadog

import (
	"fmt"

	"booketl/internal/metrics"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Config holds DogStatsD connection settings.
type Config struct {
	// Addr is the agent address, e.g. "127.0.0.1:8125" or "unix:///var/run/dsd.socket".
	Addr string

	// Namespace is an optional prefix for all metric names, e.g. "booketl.".
	Namespace string

	// GlobalTags are attached to every metric, e.g. []string{"job:book_sales"}.
	GlobalTags []string
}

// Backend adapts a statsd client to metrics.Backend. Install it globally with
// metrics.SetBackend.
type Backend struct {
	client *statsd.Client
}

// NewBackend dials the DogStatsD agent described by cfg. Addr is required.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("datadog: Addr is required")
	}

	opts := make([]statsd.Option, 0, 2)
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}

	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: create client: %w", err)
	}
	return &Backend{client: c}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	// Count takes an int64; the pipeline only emits whole-number deltas.
	_ = b.client.Count(name, int64(delta), labelsToTags(labels), 1)
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	_ = b.client.Histogram(name, value, labelsToTags(labels), 1)
}

// Flush closes the client, which drains any buffered datagrams. Intended for
// process shutdown.
func (b *Backend) Flush() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

func labelsToTags(lbls metrics.Labels) []string {
	if len(lbls) == 0 {
		return nil
	}
	out := make([]string, 0, len(lbls))
	for k, v := range lbls {
		out = append(out, k+":"+v)
	}
	return out
}
