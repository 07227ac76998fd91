// Command rainbow runs the stream-processing demonstrations over the sample
// shopping cart.
//
// Usage:
//
//	rainbow -list
//	rainbow [-group g] [-run name,...] [-workers n] [-source path]
//	        [-schedule cron] [-metrics-addr :9090]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vnykmshr/rainbow/internal/config"
	"github.com/vnykmshr/rainbow/internal/logger"
	"github.com/vnykmshr/rainbow/internal/shutdown"
	"github.com/vnykmshr/rainbow/pkg/demo"
	"github.com/vnykmshr/rainbow/pkg/metrics"
	"github.com/vnykmshr/rainbow/pkg/scheduling/scheduler"
	"github.com/vnykmshr/rainbow/pkg/scheduling/workerpool"
	"github.com/vnykmshr/rainbow/pkg/streaming/writer"
)

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "rainbow:", err)
		}
		cancel()
		os.Exit(1)
	}
}

type options struct {
	list        bool
	group       string
	names       []string
	workers     int
	sourceFile  string
	schedule    string
	metricsAddr string
}

func parseFlags(args []string, cfg config.Config, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("rainbow", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts options
		run  string
	)
	fs.BoolVar(&opts.list, "list", false, "list demonstrations and exit")
	fs.StringVar(&opts.group, "group", "", "run only this group (constructor, operator, collector)")
	fs.StringVar(&run, "run", "", "comma-separated demonstration names to run")
	fs.IntVar(&opts.workers, "workers", cfg.Workers, "demonstrations run concurrently")
	fs.StringVar(&opts.sourceFile, "source", cfg.SourceFile, "file read by the from-file demonstration")
	fs.StringVar(&opts.schedule, "schedule", cfg.Schedule, "cron expression; re-run on this schedule until interrupted")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	opts.names = splitCSV(run)
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Load()

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return err
	}

	if opts.list {
		return listDemos(stdout)
	}

	log := logger.New(logger.Options{Service: "rainbow", Env: cfg.AppEnv, Level: cfg.LogLevel, Output: stderr})

	demos, err := demo.Select(opts.group, opts.names)
	if err != nil {
		return err
	}

	m := metrics.DefaultRegistry
	if opts.metricsAddr != "" {
		_, stop, err := serveMetrics(opts.metricsAddr, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	out := writer.NewWithConfig(stdout, writer.Config{
		Name:          "console",
		BufferSize:    16 * 1024,
		FlushInterval: 100 * time.Millisecond,
		Metrics:       m,
		OnError: func(err error) {
			log.Error("console write failed", slog.Any("err", err))
		},
	})
	defer func() { _ = out.Close() }()

	runner := &demo.Runner{
		Out:        out,
		Workers:    opts.workers,
		SourceFile: opts.sourceFile,
		Metrics:    m,
		Logger:     log,
	}

	runOnce := func(ctx context.Context) error {
		start := time.Now()
		err := runner.Run(ctx, demos)
		if flushErr := out.Flush(ctx); flushErr != nil && err == nil {
			err = flushErr
		}
		log.Info("demonstrations finished",
			slog.Int("count", len(demos)),
			slog.Duration("duration", time.Since(start)),
			slog.Bool("ok", err == nil),
		)
		return err
	}

	if opts.schedule == "" {
		return runOnce(ctx)
	}
	return watch(ctx, opts.schedule, runOnce, m, log)
}

// watch runs once immediately and then on every activation of schedule
// until ctx is canceled. Failures are logged, not returned.
func watch(ctx context.Context, schedule string, runOnce func(context.Context) error, m *metrics.Registry, log *slog.Logger) error {
	s, err := scheduler.NewWithConfig(scheduler.Config{Metrics: m, Logger: log})
	if err != nil {
		return err
	}

	task := workerpool.TaskFunc(runOnce)
	if err := s.ScheduleCron("demos", schedule, task); err != nil {
		<-s.Stop()
		return err
	}

	if err := runOnce(ctx); err != nil {
		log.Error("initial run failed", slog.Any("err", err))
	}

	if err := s.Start(); err != nil {
		<-s.Stop()
		return err
	}
	for _, e := range s.List() {
		log.Info("watching", slog.String("schedule", e.Schedule), slog.Time("next", e.Next))
	}

	<-ctx.Done()
	log.Info("shutdown requested")
	<-s.Stop()
	return nil
}

// serveMetrics starts the HTTP surface on addr and returns the bound address.
func serveMetrics(addr string, log *slog.Logger) (bound net.Addr, stop func(), err error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics listen %s: %w", addr, err)
	}

	srv := &http.Server{Handler: newRouter(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("metrics server starting", slog.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics serve error", slog.Any("err", err))
		}
	}()

	return lis.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func listDemos(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range demo.All() {
		fmt.Fprintf(tw, "%s\t%s\n", d.Key(), d.Description)
	}
	return tw.Flush()
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
