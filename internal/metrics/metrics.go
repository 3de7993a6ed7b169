// Package metrics records generation counters in a dedicated Prometheus
// registry and can dump them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the metrics of one process.
type Recorder struct {
	registry *prometheus.Registry

	recordsGenerated *prometheus.CounterVec
	runDuration      prometheus.Gauge
	lastRun          prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		recordsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querygen_records_generated_total",
				Help: "Total number of training records generated, by template.",
			},
			[]string{"template", "category"},
		),
		runDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "querygen_generation_duration_seconds",
				Help: "Wall time of the last generation run, including the write.",
			},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "querygen_last_run_timestamp_seconds",
				Help: "Unix time the last generation run finished.",
			},
		),
	}
	r.registry.MustRegister(r.recordsGenerated, r.runDuration, r.lastRun)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRecords adds n records generated from template.
func (r *Recorder) ObserveRecords(template, category string, n int) {
	r.recordsGenerated.WithLabelValues(template, category).Add(float64(n))
}

// ObserveRun records the duration and completion time of a run.
func (r *Recorder) ObserveRun(d time.Duration, finishedAt time.Time) {
	r.runDuration.Set(d.Seconds())
	r.lastRun.Set(float64(finishedAt.Unix()))
}

// WriteTextfile writes the current metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
