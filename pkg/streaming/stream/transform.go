package stream

import (
	"github.com/vnykmshr/rainbow/pkg/metrics"
)

// Map returns a stream of mapper applied to each element of s, changing the element type.
func Map[T, R any](s Stream[T], mapper func(T) R) Stream[R] {
	return New[R](&mappingSource[T, R]{
		originalSource: newUpstreamSource(s),
		mapper:         mapper,
	})
}

// FlatMap replaces each element of s with the contents of the stream mapper returns for it.
func FlatMap[T, R any](s Stream[T], mapper func(T) Stream[R]) Stream[R] {
	return New[R](&flatMappingSource[T, R]{
		originalSource: newUpstreamSource(s),
		mapper:         mapper,
	})
}

// DistinctBy keeps the first element for each distinct key.
func DistinctBy[T any, K comparable](s Stream[T], key func(T) K) Stream[T] {
	return with(s, operation[T](&distinctOperation[T, K]{key: key}))
}

// Instrument counts every element passing through s in the
// stream_items_processed_total counter labelled with name.
// A nil registry means metrics.DefaultRegistry.
func Instrument[T any](s Stream[T], name string, registry *metrics.Registry) Stream[T] {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	counter := registry.StreamItems.WithLabelValues(name)
	return s.Peek(func(T) { counter.Inc() })
}
