package stream

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// filterOperation filters elements based on a predicate.
type filterOperation[T any] struct {
	predicate func(T) bool
}

func (f *filterOperation[T]) wrap(_ *execution, next pull[T]) pull[T] {
	return func(ctx context.Context) (T, bool, error) {
		for {
			value, ok, err := next(ctx)
			if err != nil || !ok || f.predicate(value) {
				return value, ok, err
			}
		}
	}
}

// mapOperation transforms elements using a mapper function.
type mapOperation[T any] struct {
	mapper func(T) T
}

func (m *mapOperation[T]) wrap(_ *execution, next pull[T]) pull[T] {
	return func(ctx context.Context) (T, bool, error) {
		value, ok, err := next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		return m.mapper(value), true, nil
	}
}

// flatMapOperation replaces each element with the contents of a mapped stream.
type flatMapOperation[T any] struct {
	mapper func(T) Stream[T]
}

func (f *flatMapOperation[T]) wrap(exec *execution, next pull[T]) pull[T] {
	var (
		mu    sync.Mutex
		inner *upstreamSource[T]
	)
	exec.onRelease(func() {
		mu.Lock()
		defer mu.Unlock()
		if inner != nil {
			_ = inner.Close()
			inner = nil
		}
	})

	return func(ctx context.Context) (T, bool, error) {
		var zero T

		mu.Lock()
		defer mu.Unlock()

		for {
			if inner != nil {
				value, ok, err := inner.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if ok {
					return value, true, nil
				}
				_ = inner.Close()
				inner = nil
			}

			value, ok, err := next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			inner = newUpstreamSource(f.mapper(value))
		}
	}
}

// distinctOperation drops elements whose key was already seen.
type distinctOperation[T any, K comparable] struct {
	key func(T) K
}

func (d *distinctOperation[T, K]) wrap(_ *execution, next pull[T]) pull[T] {
	seen := make(map[K]struct{})

	return func(ctx context.Context) (T, bool, error) {
		var zero T
		for {
			value, ok, err := next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}

			first, err := d.markSeen(seen, value)
			if err != nil {
				return zero, false, err
			}
			if first {
				return value, true, nil
			}
		}
	}
}

// markSeen records value's key. Hashing a key whose dynamic type is not
// comparable panics; that is reported as an error.
func (d *distinctOperation[T, K]) markSeen(seen map[K]struct{}, value T) (first bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stream: distinct: %v", r)
		}
	}()

	k := d.key(value)
	if _, dup := seen[k]; dup {
		return false, nil
	}
	seen[k] = struct{}{}
	return true, nil
}

// sortOperation sorts all elements (requires collecting all elements first).
type sortOperation[T any] struct {
	compare func(a, b T) int
}

func (s *sortOperation[T]) wrap(_ *execution, next pull[T]) pull[T] {
	var (
		sorted   []T
		prepared bool
	)

	return func(ctx context.Context) (T, bool, error) {
		var zero T

		if !prepared {
			for {
				value, ok, err := next(ctx)
				if err != nil {
					return zero, false, err
				}
				if !ok {
					break
				}
				sorted = append(sorted, value)
			}
			if err := ctx.Err(); err != nil {
				return zero, false, err
			}
			slices.SortStableFunc(sorted, s.compare)
			prepared = true
		}

		if len(sorted) == 0 {
			return zero, false, nil
		}
		value := sorted[0]
		sorted = sorted[1:]
		return value, true, nil
	}
}

// skipOperation skips the first n elements.
type skipOperation[T any] struct {
	count int64
}

func (s *skipOperation[T]) wrap(_ *execution, next pull[T]) pull[T] {
	var skipped int64

	return func(ctx context.Context) (T, bool, error) {
		for skipped < s.count {
			_, ok, err := next(ctx)
			if err != nil || !ok {
				var zero T
				return zero, false, err
			}
			skipped++
		}
		return next(ctx)
	}
}

// limitOperation limits the number of elements.
type limitOperation[T any] struct {
	maxSize int64
}

func (l *limitOperation[T]) wrap(_ *execution, next pull[T]) pull[T] {
	var count int64

	return func(ctx context.Context) (T, bool, error) {
		if count >= l.maxSize {
			// Upstream is never asked for more than maxSize elements.
			var zero T
			return zero, false, nil
		}
		value, ok, err := next(ctx)
		if ok && err == nil {
			count++
		}
		return value, ok, err
	}
}

// peekOperation performs an action on each element without modifying the stream.
type peekOperation[T any] struct {
	action func(T)
}

func (p *peekOperation[T]) wrap(_ *execution, next pull[T]) pull[T] {
	return func(ctx context.Context) (T, bool, error) {
		value, ok, err := next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		p.action(value)
		return value, true, nil
	}
}
