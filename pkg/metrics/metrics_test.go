package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/rainbow/internal/testutil"
)

func TestObserveDemo(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := NewRegistry(reg)

	registry.ObserveDemo("collector", "group", time.Millisecond, nil)

	testutil.AssertEqual(t, promtest.ToFloat64(registry.DemoRuns.WithLabelValues("collector", "group")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(registry.DemoFailures.WithLabelValues("collector", "group")), 0.0)

	count, err := promtest.GatherAndCount(reg, "rainbow_demo_duration_seconds")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, 1)
}

func TestNewRegistryDefaults(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := NewRegistryWithConfig(Config{Registry: reg})

	registry.WriterFlushes.WithLabelValues("stdout").Inc()

	count, err := promtest.GatherAndCount(reg, "rainbow_writer_flushes_total")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, 1)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	testutil.AssertEqual(t, cfg.Namespace, DefaultNamespace)
	if cfg.Registry == nil {
		t.Fatal("default config must carry a registerer")
	}
}
