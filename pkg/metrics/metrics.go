// Package metrics provides Prometheus instrumentation for rainbow components.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for rainbow components.
type Registry struct {
	// Demonstration Metrics
	DemoRuns     *prometheus.CounterVec
	DemoFailures *prometheus.CounterVec
	DemoDuration *prometheus.HistogramVec

	// Task Scheduling Metrics
	TasksExecuted  *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	ScheduledRuns  *prometheus.CounterVec
	WorkerPoolSize *prometheus.GaugeVec

	// Streaming Metrics
	StreamItems        *prometheus.CounterVec
	WriterFlushes      *prometheus.CounterVec
	WriterBytesWritten *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by rainbow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Registry: reg, Namespace: DefaultNamespace})
}

// NewRegistryWithConfig creates a metrics registry from a Config.
func NewRegistryWithConfig(cfg Config) *Registry {
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	reg := cfg.Registry
	if len(cfg.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(cfg.Labels, reg)
	}
	factory := promauto.With(reg)
	ns := cfg.Namespace

	return &Registry{
		DemoRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "demo",
				Name:      "runs_total",
				Help:      "Total number of demonstration runs",
			},
			[]string{"group", "demo"},
		),

		DemoFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "demo",
				Name:      "failures_total",
				Help:      "Total number of demonstration runs that returned an error",
			},
			[]string{"group", "demo"},
		),

		DemoDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "demo",
				Name:      "duration_seconds",
				Help:      "Time spent running a demonstration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"group", "demo"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that failed",
			},
			[]string{"pool_name"},
		),

		ScheduledRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "scheduler",
				Name:      "runs_total",
				Help:      "Total number of scheduled task firings",
			},
			[]string{"task_id"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		StreamItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "stream",
				Name:      "items_processed_total",
				Help:      "Total number of items observed flowing through instrumented streams",
			},
			[]string{"stream_name"},
		),

		WriterFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "writer",
				Name:      "flushes_total",
				Help:      "Total number of writer flushes",
			},
			[]string{"writer_name"},
		),

		WriterBytesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "writer",
				Name:      "bytes_written_total",
				Help:      "Total bytes written",
			},
			[]string{"writer_name"},
		),
	}
}

// ObserveDemo records one demonstration run.
func (r *Registry) ObserveDemo(group, demo string, duration time.Duration, err error) {
	r.DemoRuns.WithLabelValues(group, demo).Inc()
	r.DemoDuration.WithLabelValues(group, demo).Observe(duration.Seconds())
	if err != nil {
		r.DemoFailures.WithLabelValues(group, demo).Inc()
	}
}
