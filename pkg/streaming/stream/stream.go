package stream

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStreamClosed is returned when attempting to operate on a closed stream.
var ErrStreamClosed = errors.New("stream is closed")

// Stream represents a sequence of elements supporting sequential operations.
// Streams are lazy; computation on the source data is only performed when a terminal
// operation is initiated, and source elements are consumed only as needed.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying the given function to elements.
	// Use the package-level Map to change the element type.
	Map(mapper func(T) T) Stream[T]

	// FlatMap returns a stream consisting of results of replacing each element with
	// the contents of a mapped stream produced by applying the provided mapping function.
	FlatMap(mapper func(T) Stream[T]) Stream[T]

	// Distinct returns a stream of distinct elements, keeping the first occurrence.
	// Elements must be of a comparable dynamic type.
	Distinct() Stream[T]

	// Sorted returns a stream sorted by compare. The sort is stable.
	// The compare function should return negative if a < b, 0 if a == b, positive if a > b.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip returns a stream consisting of remaining elements after skipping n elements.
	Skip(n int64) Stream[T]

	// Limit returns a stream consisting of elements truncated to be no longer than maxSize.
	Limit(maxSize int64) Stream[T]

	// Peek returns a stream consisting of elements, additionally performing the provided
	// action on each element as elements are consumed.
	Peek(action func(T)) Stream[T]

	// Terminal operations (eager, consume the stream)

	// ForEach performs an action for each element of the stream.
	ForEach(ctx context.Context, action func(T)) error

	// Reduce performs a reduction on elements using the provided identity and combining function.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// ToSlice returns a slice containing all elements.
	ToSlice(ctx context.Context) ([]T, error)

	// Count returns the count of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch returns whether any elements match the given predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch returns whether all elements match the given predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch returns whether no elements match the given predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, if present.
	FindFirst(ctx context.Context) (T, bool, error)

	// FindAny returns any element, if present.
	FindAny(ctx context.Context) (T, bool, error)

	// Min returns the minimum element according to the provided comparator.
	Min(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Max returns the maximum element according to the provided comparator.
	Max(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Stream control

	// Close releases a running pipeline's resources, such as open inner
	// streams of FlatMap, and closes the source.
	Close() error

	// IsClosed returns true if the stream is closed.
	IsClosed() bool
}

// Source represents a data source for streams.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

// stream is the default implementation of Stream.
type stream[T any] struct {
	source   Source[T]
	closed   int32 // atomic
	pipeline []operation[T]
	mu       sync.Mutex
	exec     *execution // resources held by the running pipeline
}

// pull yields the next element of a running pipeline. It returns false once
// the pipeline is exhausted.
type pull[T any] func(ctx context.Context) (T, bool, error)

// operation represents a stream operation that can be applied to elements.
// wrap returns a pull that asks next for elements only when it is itself
// asked, so no stage runs ahead of the terminal. Per-run state lives in the
// returned closure.
type operation[T any] interface {
	wrap(exec *execution, next pull[T]) pull[T]
}

// execution collects cleanups registered by the operations of one run.
type execution struct {
	mu       sync.Mutex
	releases []func()
}

func (e *execution) onRelease(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releases = append(e.releases, fn)
}

// release runs the cleanups in reverse registration order.
func (e *execution) release() {
	e.mu.Lock()
	releases := e.releases
	e.releases = nil
	e.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

// New creates a new Stream from a Source.
func New[T any](source Source[T]) Stream[T] {
	return &stream[T]{
		source:   source,
		pipeline: make([]operation[T], 0),
	}
}

// derive returns a new stream sharing s's source with op appended to the pipeline.
func (s *stream[T]) derive(op operation[T]) Stream[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	newStream := &stream[T]{
		source:   s.source,
		pipeline: make([]operation[T], len(s.pipeline)+1),
	}
	copy(newStream.pipeline, s.pipeline)
	newStream.pipeline[len(s.pipeline)] = op

	return newStream
}

// with appends op to any Stream implementation.
func with[T any](s Stream[T], op operation[T]) Stream[T] {
	if impl, ok := s.(*stream[T]); ok {
		return impl.derive(op)
	}
	return &stream[T]{
		source:   newUpstreamSource(s),
		pipeline: []operation[T]{op},
	}
}

func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return s.derive(&filterOperation[T]{predicate: predicate})
}

func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return s.derive(&mapOperation[T]{mapper: mapper})
}

func (s *stream[T]) FlatMap(mapper func(T) Stream[T]) Stream[T] {
	return s.derive(&flatMapOperation[T]{mapper: mapper})
}

func (s *stream[T]) Distinct() Stream[T] {
	return s.derive(&distinctOperation[T, any]{key: func(v T) any { return v }})
}

func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	return s.derive(&sortOperation[T]{compare: compare})
}

func (s *stream[T]) Skip(n int64) Stream[T] {
	return s.derive(&skipOperation[T]{count: n})
}

func (s *stream[T]) Limit(maxSize int64) Stream[T] {
	return s.derive(&limitOperation[T]{maxSize: maxSize})
}

func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return s.derive(&peekOperation[T]{action: action})
}

// run executes the pipeline, feeding values to visit until it returns false,
// and closes the stream afterwards. Each element is pulled through every
// stage only when visit is ready for it.
func (s *stream[T]) run(ctx context.Context, visit func(T) bool) error {
	if s.IsClosed() {
		return ErrStreamClosed
	}

	defer func() { _ = s.Close() }()

	next, err := s.execute()
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		value, ok, err := next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			// Sources stop silently on cancellation, so exhaustion may mean ctx is done.
			return ctx.Err()
		}
		if !visit(value) {
			return nil
		}
	}
}

func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return s.run(ctx, func(v T) bool {
		action(v)
		return true
	})
}

func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var result []T
	err := s.run(ctx, func(v T) bool {
		result = append(result, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.run(ctx, func(T) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := s.run(ctx, func(v T) bool {
		result = accumulator(result, v)
		return true
	})
	if err != nil {
		return identity, err
	}
	return result, nil
}

func (s *stream[T]) FindFirst(ctx context.Context) (T, bool, error) {
	var (
		first T
		found bool
	)
	err := s.run(ctx, func(v T) bool {
		first, found = v, true
		return false
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return first, found, nil
}

// FindAny is FindFirst for sequential streams.
func (s *stream[T]) FindAny(ctx context.Context) (T, bool, error) {
	return s.FindFirst(ctx)
}

func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	matched := false
	err := s.run(ctx, func(v T) bool {
		matched = predicate(v)
		return !matched
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	all := true
	err := s.run(ctx, func(v T) bool {
		all = predicate(v)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	result, err := s.AnyMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return !result, nil
}

func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.extreme(ctx, func(v, current T) bool { return compare(v, current) < 0 })
}

func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.extreme(ctx, func(v, current T) bool { return compare(v, current) > 0 })
}

// extreme keeps the first element for which no later element is better.
func (s *stream[T]) extreme(ctx context.Context, better func(v, current T) bool) (T, bool, error) {
	var (
		best  T
		found bool
	)
	err := s.run(ctx, func(v T) bool {
		if !found || better(v, best) {
			best, found = v, true
		}
		return true
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return best, found, nil
}

func (s *stream[T]) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	// Release what the pipeline holds before the source it reads from.
	s.mu.Lock()
	exec := s.exec
	s.exec = nil
	s.mu.Unlock()
	if exec != nil {
		exec.release()
	}

	if s.source != nil {
		return s.source.Close()
	}

	return nil
}

func (s *stream[T]) IsClosed() bool {
	return atomic.LoadInt32(&s.closed) != 0
}

// execute chains the pipeline's operations over the source and returns the
// pull for the last stage. Nothing is read until the pull is called.
func (s *stream[T]) execute() (pull[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.IsClosed() {
		return nil, ErrStreamClosed
	}
	if s.exec != nil {
		s.exec.release()
	}
	exec := &execution{}
	s.exec = exec

	source := s.source
	next := pull[T](func(ctx context.Context) (T, bool, error) {
		return source.Next(ctx)
	})
	for _, op := range s.pipeline {
		next = op.wrap(exec, next)
	}

	return next, nil
}
