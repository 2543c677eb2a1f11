package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jakechorley/semester-planner/pkg/core/allocator"
)

// Recorder collects allocation run metrics on a private registry
type Recorder struct {
	registry       *prometheus.Registry
	runs           *prometheus.CounterVec
	blocks         *prometheus.CounterVec
	shortfall      *prometheus.GaugeVec
	underAllocated prometheus.Gauge
	duration       prometheus.Histogram
}

// NewRecorder registers the planner collectors
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Allocation runs by result",
	}, []string{"result"})

	blocks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_blocks_scheduled_total",
		Help: "Blocks committed per allocation phase",
	}, []string{"phase"})

	shortfall := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_subject_shortfall_blocks",
		Help: "Required blocks left unscheduled per subject in the last run",
	}, []string{"subject"})

	underAllocated := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_under_allocated_subjects",
		Help: "Subjects below their required block count in the last run",
	})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_allocation_duration_seconds",
		Help:    "Wall time spent in allocation",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(runs, blocks, shortfall, underAllocated, duration)

	return &Recorder{
		registry:       registry,
		runs:           runs,
		blocks:         blocks,
		shortfall:      shortfall,
		underAllocated: underAllocated,
		duration:       duration,
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRun records the outcome of one allocation run
func (r *Recorder) ObserveRun(outcome *allocator.AllocationOutcome, elapsed time.Duration) {
	result := "complete"
	if !outcome.Success {
		result = "incomplete"
	}
	r.runs.WithLabelValues(result).Inc()
	r.duration.Observe(elapsed.Seconds())

	for phase, count := range outcome.Stats.Phases {
		r.blocks.WithLabelValues(phase).Add(float64(count))
	}

	r.shortfall.Reset()
	for _, s := range outcome.Stats.Subjects {
		r.shortfall.WithLabelValues(s.SubjectID).Set(float64(s.Shortfall()))
	}
	r.underAllocated.Set(float64(len(outcome.Warnings)))
}

// WriteTextfile writes the registry in the Prometheus text format, for the node exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
