package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/rainbow/pkg/common/validation"
)

// FromSlice creates a Stream from a slice.
func FromSlice[T any](slice []T) Stream[T] {
	return New(&sliceSource[T]{slice: slice})
}

// Of creates a Stream from the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromChannel creates a Stream from a channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return New(&channelSource[T]{ch: ch})
}

// FromSeq creates a Stream from an iterator.
func FromSeq[T any](seq iter.Seq[T]) Stream[T] {
	return New(&seqSource[T]{seq: seq, done: make(chan struct{})})
}

// Generate creates an infinite Stream from a generator function.
func Generate[T any](generator func() T) Stream[T] {
	return New(&generatorSource[T]{generator: generator})
}

// Iterate creates an infinite Stream of seed, next(seed), next(next(seed)), ...
func Iterate[T any](seed T, next func(T) T) Stream[T] {
	current, started := seed, false
	return Generate(func() T {
		if started {
			current = next(current)
		}
		started = true
		return current
	})
}

// Range creates a Stream of the integers in [start, end).
func Range(start, end int) Stream[int] {
	return New(&rangeSource{next: int64(start), end: int64(end)})
}

// Ints creates an infinite Stream of uniformly distributed random integers in [lo, hi).
// Values come from math/rand/v2's top-level source, which is safe for concurrent use.
// Invalid bounds surface as an error from the terminal operation.
func Ints(lo, hi int) Stream[int] {
	if err := validation.ValidateBounds("stream", "bounds", lo, hi); err != nil {
		return New(&errorSource[int]{err: err})
	}
	return Generate(func() int { return lo + rand.IntN(hi-lo) })
}

// Floats creates an infinite Stream of random float64 values in [0, 1).
func Floats() Stream[float64] {
	return Generate(rand.Float64)
}

// Lines creates a Stream of the lines read from r, without line terminators.
// The reader is not closed.
func Lines(r io.Reader) Stream[string] {
	return New(&lineSource{scanner: bufio.NewScanner(r)})
}

// FromFile creates a Stream of the lines of the file at path. The file is
// opened on first use; open and read errors are returned by the terminal operation.
func FromFile(path string) Stream[string] {
	return New(&fileSource{path: path})
}

// Empty creates an empty Stream.
func Empty[T any]() Stream[T] {
	return New(&emptySource[T]{})
}

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int64
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	currentIndex := atomic.AddInt64(&s.index, 1) - 1
	if currentIndex >= int64(len(s.slice)) {
		return zero, false, nil
	}

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
		return s.slice[currentIndex], true, nil
	}
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// channelSource implements Source for channels.
type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *channelSource[T]) Close() error {
	return nil
}

// seqSource runs an iterator in its own goroutine and hands values over a channel.
type seqSource[T any] struct {
	seq       iter.Seq[T]
	startOnce sync.Once
	closeOnce sync.Once
	values    chan T
	done      chan struct{}
}

func (s *seqSource[T]) start() {
	s.values = make(chan T)
	go func() {
		defer close(s.values)
		for v := range s.seq {
			select {
			case s.values <- v:
			case <-s.done:
				return
			}
		}
	}()
}

func (s *seqSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case <-s.done:
		return zero, false, nil
	default:
	}
	s.startOnce.Do(s.start)

	select {
	case value, ok := <-s.values:
		return value, ok, nil
	case <-s.done:
		return zero, false, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *seqSource[T]) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() T
}

func (s *generatorSource[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	default:
		return s.generator(), true, nil
	}
}

func (s *generatorSource[T]) Close() error {
	return nil
}

// rangeSource counts from next up to, but excluding, end.
type rangeSource struct {
	next int64
	end  int64
}

func (s *rangeSource) Next(_ context.Context) (int, bool, error) {
	v := atomic.AddInt64(&s.next, 1) - 1
	if v >= s.end {
		return 0, false, nil
	}
	return int(v), true, nil
}

func (s *rangeSource) Close() error {
	return nil
}

// lineSource implements Source over a line scanner.
type lineSource struct {
	mu      sync.Mutex
	scanner *bufio.Scanner
	closed  bool
}

func (s *lineSource) Next(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, nil
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", false, fmt.Errorf("stream: read lines: %w", err)
	}
	return "", false, nil
}

func (s *lineSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// fileSource lazily opens a file and reads it line by line.
type fileSource struct {
	path    string
	mu      sync.Mutex
	file    *os.File
	scanner *bufio.Scanner
	closed  bool
}

func (s *fileSource) Next(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, nil
	}
	if s.file == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return "", false, fmt.Errorf("stream: %w", err)
		}
		s.file = f
		s.scanner = bufio.NewScanner(f)
	}

	if s.scanner.Scan() {
		return s.scanner.Text(), true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", false, fmt.Errorf("stream: read %s: %w", s.path, err)
	}
	return "", false, nil
}

func (s *fileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// emptySource implements Source for empty streams.
type emptySource[T any] struct{}

func (s *emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *emptySource[T]) Close() error {
	return nil
}

// errorSource fails on first use.
type errorSource[T any] struct {
	err error
}

func (s *errorSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, s.err
}

func (s *errorSource[T]) Close() error {
	return nil
}

// upstreamSource exposes another stream's output as a Source, executing it on first use.
type upstreamSource[T any] struct {
	upstream Stream[T]
	once     sync.Once
	next     pull[T]
	err      error
}

func newUpstreamSource[T any](upstream Stream[T]) *upstreamSource[T] {
	return &upstreamSource[T]{upstream: upstream}
}

func (s *upstreamSource[T]) start(ctx context.Context) {
	if impl, ok := s.upstream.(*stream[T]); ok {
		s.next, s.err = impl.execute()
		return
	}

	values, err := s.upstream.ToSlice(ctx)
	if err != nil {
		s.err = err
		return
	}
	source := &sliceSource[T]{slice: values}
	s.next = source.Next
}

func (s *upstreamSource[T]) Next(ctx context.Context) (T, bool, error) {
	s.once.Do(func() { s.start(ctx) })
	if s.err != nil {
		var zero T
		return zero, false, s.err
	}
	return s.next(ctx)
}

func (s *upstreamSource[T]) Close() error {
	return s.upstream.Close()
}

// mappingSource implements Source that transforms elements from one type to another.
type mappingSource[From, To any] struct {
	originalSource Source[From]
	mapper         func(From) To
}

func (s *mappingSource[From, To]) Next(ctx context.Context) (To, bool, error) {
	var zero To

	value, hasMore, err := s.originalSource.Next(ctx)
	if err != nil {
		return zero, false, err
	}

	if !hasMore {
		return zero, false, nil
	}

	return s.mapper(value), true, nil
}

func (s *mappingSource[From, To]) Close() error {
	return s.originalSource.Close()
}

// flatMappingSource replaces each upstream element with the contents of a mapped stream.
type flatMappingSource[From, To any] struct {
	mu             sync.Mutex
	originalSource Source[From]
	mapper         func(From) Stream[To]
	current        *upstreamSource[To]
}

func (s *flatMappingSource[From, To]) Next(ctx context.Context) (To, bool, error) {
	var zero To

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if s.current != nil {
			value, ok, err := s.current.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if ok {
				return value, true, nil
			}
			_ = s.current.Close()
			s.current = nil
		}

		value, hasMore, err := s.originalSource.Next(ctx)
		if err != nil || !hasMore {
			return zero, false, err
		}
		s.current = newUpstreamSource(s.mapper(value))
	}
}

func (s *flatMappingSource[From, To]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		_ = s.current.Close()
		s.current = nil
	}
	return s.originalSource.Close()
}
