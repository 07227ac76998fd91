package stream

import (
	"context"
	"fmt"
	"strings"
)

// Collect performs a mutable reduction: supplier creates the container and
// accumulator folds each element into it.
func Collect[T, A any](ctx context.Context, s Stream[T], supplier func() A, accumulator func(A, T) A) (A, error) {
	result := supplier()
	err := s.ForEach(ctx, func(v T) {
		result = accumulator(result, v)
	})
	if err != nil {
		var zero A
		return zero, err
	}
	return result, nil
}

// GroupBy collects elements into lists keyed by key, preserving encounter order within each list.
func GroupBy[T any, K comparable](ctx context.Context, s Stream[T], key func(T) K) (map[K][]T, error) {
	return Collect(ctx, s,
		func() map[K][]T { return make(map[K][]T) },
		func(groups map[K][]T, v T) map[K][]T {
			k := key(v)
			groups[k] = append(groups[k], v)
			return groups
		},
	)
}

// PartitionBy splits elements by predicate. Both keys are always present.
func PartitionBy[T any](ctx context.Context, s Stream[T], predicate func(T) bool) (map[bool][]T, error) {
	return Collect(ctx, s,
		func() map[bool][]T { return map[bool][]T{true: {}, false: {}} },
		func(parts map[bool][]T, v T) map[bool][]T {
			p := predicate(v)
			parts[p] = append(parts[p], v)
			return parts
		},
	)
}

// Joining concatenates the string form of each element, separated by sep.
func Joining[T any](ctx context.Context, s Stream[T], sep string) (string, error) {
	var b strings.Builder
	first := true
	err := s.ForEach(ctx, func(v T) {
		if !first {
			b.WriteString(sep)
		}
		first = false
		fmt.Fprint(&b, v)
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
