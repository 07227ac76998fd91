package demo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/rainbow/internal/testutil"
	"github.com/vnykmshr/rainbow/pkg/metrics"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func mustSelect(t *testing.T, names ...string) []Demo {
	t.Helper()
	demos, err := Select("", names)
	require.NoError(t, err)
	return demos
}

func TestRunnerWritesInDeclarationOrder(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		var out bytes.Buffer
		r := &Runner{Out: &out, Workers: workers, Logger: quietLogger()}

		err := r.Run(context.Background(), mustSelect(t, "count", "max", "min", "from-array"))
		require.NoError(t, err)

		want := "=== constructor/from-array ===\n1\n2\n3\n4\n5\n" +
			"=== operator/max ===\n4999\n" +
			"=== operator/min ===\n78.2\n" +
			"=== operator/count ===\n9\n"
		assert.Equal(t, want, out.String(), "workers=%d", workers)
	}
}

func TestRunnerRunsEveryDemo(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Out: &out, Logger: quietLogger()}

	require.NoError(t, r.Run(context.Background(), All()))
	for _, d := range All() {
		assert.Contains(t, out.String(), "=== "+d.Key()+" ===\n")
	}
}

func TestRunnerCollectsFailures(t *testing.T) {
	boom := errors.New("boom")
	failing := Demo{
		Name:        "failing",
		Group:       GroupOperator,
		Description: "always fails",
		Run: func(ctx context.Context, env *Env) error {
			env.println("partial output")
			return boom
		},
	}
	demos := append(mustSelect(t, "count"), failing)
	demos = append(demos, mustSelect(t, "max")...)

	reg := metrics.NewRegistry(prometheus.NewRegistry())
	var out bytes.Buffer
	r := &Runner{Out: &out, Workers: 2, Logger: quietLogger(), Metrics: reg}

	err := r.Run(context.Background(), demos)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "demo operator/failing")

	want := "=== operator/count ===\n9\n" +
		"=== operator/failing ===\npartial output\nerror: boom\n" +
		"=== operator/max ===\n4999\n"
	assert.Equal(t, want, out.String())

	assert.Equal(t, 1.0, promtest.ToFloat64(reg.DemoRuns.WithLabelValues(GroupOperator, "failing")))
	assert.Equal(t, 1.0, promtest.ToFloat64(reg.DemoFailures.WithLabelValues(GroupOperator, "failing")))
	assert.Equal(t, 0.0, promtest.ToFloat64(reg.DemoFailures.WithLabelValues(GroupOperator, "count")))
	assert.Equal(t, 3.0, promtest.ToFloat64(reg.TasksExecuted.WithLabelValues("demos")))
	assert.Equal(t, 9.0, promtest.ToFloat64(reg.StreamItems.WithLabelValues("count")))
}

func TestRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := &Runner{Out: &out, Logger: quietLogger()}

	err := r.Run(ctx, mustSelect(t, "count", "max"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, strings.Count(out.String(), "error: "))
}

func TestRunnerTimeout(t *testing.T) {
	slow := Demo{
		Name:  "slow",
		Group: GroupOperator,
		Run: func(ctx context.Context, env *Env) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := &Runner{Out: io.Discard, Logger: quietLogger()}
	err := r.Run(ctx, []Demo{slow})
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunnerNoDemos(t *testing.T) {
	r := &Runner{Out: io.Discard}
	assert.NoError(t, r.Run(context.Background(), nil))
}

func TestRunnerOutputError(t *testing.T) {
	w := testutil.NewMockWriter()
	w.SetAlwaysError(testutil.ErrSimulated)

	r := &Runner{Out: w, Logger: quietLogger()}
	err := r.Run(context.Background(), mustSelect(t, "count"))
	assert.ErrorIs(t, err, testutil.ErrSimulated)
}
