// Package metrics records operational counters and timings from the pipeline
// behind a pluggable Backend.
//
// The default backend is a no-op, so instrumentation calls are always safe;
// cmd/booketl installs a real backend (Pushgateway or DogStatsD) when one is
// configured. Concrete metric systems live in subpackages, mirroring how
// storage isolates its backends.
package metrics

import "time"

// Labels are key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal sink interface: counters plus duration-style
// observations, with an explicit Flush for push-based systems.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs b as the process-wide backend. nil is ignored so the
// nop default survives a failed backend construction.
func SetBackend(b Backend) {
	if b != nil {
		backend = b
	}
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one pipeline step execution and observes its duration,
// labeled with the step name and success/failure.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}

	backend.IncCounter("booketl_step_total", 1, lbls)
	backend.ObserveHistogram("booketl_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRow adds delta to the record counter for the given kind. Kinds mirror
// the run summary fields: "extracted", "parse_skipped", "validate_dropped",
// "fact_inserted", "dim_inserted". Non-positive deltas are dropped.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("booketl_records_total", float64(delta), Labels{"job": job, "kind": kind})
}

// RecordBatches adds delta to the bulk-insert batch counter. Non-positive
// deltas are dropped.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("booketl_batches_total", float64(delta), Labels{"job": job})
}
