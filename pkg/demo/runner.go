package demo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vnykmshr/rainbow/pkg/catalog"
	"github.com/vnykmshr/rainbow/pkg/metrics"
	"github.com/vnykmshr/rainbow/pkg/scheduling/workerpool"
)

// DefaultWorkers is the number of demonstrations run concurrently when
// Runner.Workers is unset.
const DefaultWorkers = 4

// Runner executes demonstrations concurrently and writes their output in
// declaration order.
type Runner struct {
	Out        io.Writer
	Workers    int
	SourceFile string
	Metrics    *metrics.Registry
	Logger     *slog.Logger
	Items      func() []catalog.CartItem
}

// demoTask runs one demonstration into its own buffer.
type demoTask struct {
	index int
	demo  Demo
	env   *Env
	out   *bytes.Buffer
}

func (t *demoTask) Execute(ctx context.Context) error {
	return t.demo.Run(ctx, t.env)
}

// Run executes demos and returns every failure joined. A failing
// demonstration does not stop the others.
func (r *Runner) Run(ctx context.Context, demos []Demo) error {
	if len(demos) == 0 {
		return nil
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	pool, err := workerpool.NewWithConfig(workerpool.Config{
		Name:        "demos",
		WorkerCount: workers,
		QueueSize:   len(demos),
		Metrics:     r.Metrics,
	})
	if err != nil {
		return err
	}

	tasks := make([]*demoTask, len(demos))
	errs := make([]error, len(demos))
	for i, d := range demos {
		out := &bytes.Buffer{}
		env := NewEnv(out)
		env.SourceFile = r.SourceFile
		env.Metrics = r.Metrics
		env.Items = r.Items
		tasks[i] = &demoTask{index: i, demo: d, env: env, out: out}
	}

	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		defer pool.Shutdown()
		for i, t := range tasks {
			if err := pool.SubmitWithContext(ctx, t); err != nil {
				errs[i] = err
			}
		}
	}()

	for result := range pool.Results() {
		t := result.Task.(*demoTask)
		errs[t.index] = result.Error

		attrs := []any{
			"group", t.demo.Group,
			"demo", t.demo.Name,
			"worker", result.WorkerID,
			"duration", result.Duration,
		}
		if result.Error != nil {
			logger.Error("demo failed", append(attrs, "error", result.Error)...)
		} else {
			logger.Debug("demo finished", attrs...)
		}
		if r.Metrics != nil {
			r.Metrics.ObserveDemo(t.demo.Group, t.demo.Name, result.Duration, result.Error)
		}
	}
	<-submitted

	var failures []error
	for i, t := range tasks {
		if _, err := fmt.Fprintf(r.Out, "=== %s ===\n", t.demo.Key()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if _, err := r.Out.Write(t.out.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if errs[i] != nil {
			_, _ = fmt.Fprintf(r.Out, "error: %v\n", errs[i])
			failures = append(failures, fmt.Errorf("demo %s: %w", t.demo.Key(), errs[i]))
		}
	}

	return errors.Join(failures...)
}
