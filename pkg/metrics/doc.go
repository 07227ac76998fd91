// Package metrics provides Prometheus instrumentation for rainbow components.
//
// A Registry groups the counters, gauges and histograms updated by the demo
// runner, the worker pool, the cron scheduler, instrumented streams and the
// console writer. DefaultRegistry is registered with
// prometheus.DefaultRegisterer at init; tests and embedders should build an
// isolated one:
//
//	reg := metrics.NewRegistry(prometheus.NewRegistry())
//	reg.ObserveDemo("operator", "filter", 3*time.Millisecond, nil)
//
// Expose the default registry over HTTP with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Available Metrics
//
//   - rainbow_demo_runs_total{group,demo}
//   - rainbow_demo_failures_total{group,demo}
//   - rainbow_demo_duration_seconds{group,demo}
//   - rainbow_workerpool_tasks_executed_total{pool_name}
//   - rainbow_workerpool_tasks_failed_total{pool_name}
//   - rainbow_workerpool_size{pool_name}
//   - rainbow_scheduler_runs_total{task_id}
//   - rainbow_stream_items_processed_total{stream_name}
//   - rainbow_writer_flushes_total{writer_name}
//   - rainbow_writer_bytes_written_total{writer_name}
package metrics
