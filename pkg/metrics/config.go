package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every rainbow metric name.
const DefaultNamespace = "rainbow"

// Config holds configuration for metrics collection.
type Config struct {
	// Registry is the Prometheus registry to use. If nil, uses prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace overrides the default "rainbow" namespace for metrics.
	Namespace string

	// Labels are additional constant labels added to all metrics.
	Labels prometheus.Labels
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Registry:  prometheus.DefaultRegisterer,
		Namespace: DefaultNamespace,
	}
}
