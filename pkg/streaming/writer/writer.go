package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/rainbow/pkg/metrics"
)

// ErrWriterClosed is returned when attempting to write to a closed writer.
var ErrWriterClosed = errors.New("writer is closed")

// AsyncWriter is an io.Writer that buffers data in memory and hands it to the
// underlying writer from a background goroutine.
type AsyncWriter interface {
	io.Writer
	io.StringWriter

	// Flush forces all buffered data to be written to the underlying writer.
	// It blocks until the data is written or ctx is done.
	Flush(ctx context.Context) error

	// Close flushes remaining data and stops the background goroutine.
	// After Close returns, no more writes are accepted.
	Close() error

	// Stats returns statistics about the writer.
	Stats() Stats

	// IsClosed returns true if the writer is closed.
	IsClosed() bool
}

// Stats holds statistics about async writer activity.
type Stats struct {
	// BytesWritten is the number of bytes delivered to the underlying writer.
	BytesWritten int64

	// WriteCount is the number of accepted Write calls.
	WriteCount int64

	// FlushCount is the number of non-empty flushes.
	FlushCount int64

	// ErrorCount is the number of failed flushes.
	ErrorCount int64

	// Buffered is the number of bytes currently waiting to be flushed.
	Buffered int
}

// Config holds configuration options for AsyncWriter.
type Config struct {
	// Name labels the writer's metrics.
	// Default: "default"
	Name string

	// BufferSize is the number of bytes buffered before an automatic flush.
	// Default: 64KB
	BufferSize int

	// FlushInterval is how often to flush the buffer automatically.
	// Set to 0 to disable automatic flushing.
	FlushInterval time.Duration

	// Metrics receives flush and byte counts. Nil disables instrumentation.
	Metrics *metrics.Registry

	// OnError is called when a background flush fails.
	OnError func(error)
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Name:          "default",
		BufferSize:    64 * 1024,
		FlushInterval: time.Second,
	}
}

type writeRequest struct {
	data []byte
	done chan error
}

type asyncWriter struct {
	underlying io.Writer
	config     Config

	// buffer is owned by loop.
	buffer []byte

	writeCh chan writeRequest
	flushCh chan chan error
	closeCh chan chan error
	done    chan struct{}

	closed int32

	stats   Stats
	statsMu sync.Mutex
}

// New creates a new AsyncWriter with default configuration.
func New(w io.Writer) AsyncWriter {
	return NewWithConfig(w, DefaultConfig())
}

// NewWithConfig creates a new AsyncWriter with the specified configuration.
func NewWithConfig(w io.Writer, config Config) AsyncWriter {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.Name == "" {
		config.Name = DefaultConfig().Name
	}

	aw := &asyncWriter{
		underlying: w,
		config:     config,
		buffer:     make([]byte, 0, config.BufferSize),
		writeCh:    make(chan writeRequest),
		flushCh:    make(chan chan error),
		closeCh:    make(chan chan error),
		done:       make(chan struct{}),
	}

	go aw.loop()

	return aw
}

// Write copies p into the buffer. It returns once the data is buffered, or
// with the flush error if making room for p failed.
func (aw *asyncWriter) Write(p []byte) (int, error) {
	if aw.IsClosed() {
		return 0, ErrWriterClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	req := writeRequest{data: bytes.Clone(p), done: make(chan error, 1)}

	select {
	case aw.writeCh <- req:
	case <-aw.done:
		return 0, ErrWriterClosed
	}

	if err := <-req.done; err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (aw *asyncWriter) WriteString(s string) (int, error) {
	return aw.Write([]byte(s))
}

// Flush implements AsyncWriter.Flush.
func (aw *asyncWriter) Flush(ctx context.Context) error {
	if aw.IsClosed() {
		return ErrWriterClosed
	}

	done := make(chan error, 1)

	select {
	case aw.flushCh <- done:
	case <-ctx.Done():
		return ctx.Err()
	case <-aw.done:
		return ErrWriterClosed
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements AsyncWriter.Close.
func (aw *asyncWriter) Close() error {
	if !atomic.CompareAndSwapInt32(&aw.closed, 0, 1) {
		return nil
	}

	done := make(chan error, 1)
	aw.closeCh <- done
	err := <-done
	<-aw.done

	return err
}

// Stats implements AsyncWriter.Stats.
func (aw *asyncWriter) Stats() Stats {
	aw.statsMu.Lock()
	defer aw.statsMu.Unlock()
	return aw.stats
}

// IsClosed implements AsyncWriter.IsClosed.
func (aw *asyncWriter) IsClosed() bool {
	return atomic.LoadInt32(&aw.closed) != 0
}

// loop serializes every buffer mutation and underlying write.
func (aw *asyncWriter) loop() {
	defer close(aw.done)

	var tick <-chan time.Time
	if aw.config.FlushInterval > 0 {
		ticker := time.NewTicker(aw.config.FlushInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case req := <-aw.writeCh:
			req.done <- aw.append(req.data)

		case done := <-aw.flushCh:
			done <- aw.flush()

		case <-tick:
			if err := aw.flush(); err != nil && aw.config.OnError != nil {
				aw.config.OnError(err)
			}

		case done := <-aw.closeCh:
			done <- aw.flush()
			return
		}
	}
}

func (aw *asyncWriter) append(data []byte) error {
	if len(aw.buffer) > 0 && len(aw.buffer)+len(data) > aw.config.BufferSize {
		if err := aw.flush(); err != nil {
			return err
		}
	}

	aw.buffer = append(aw.buffer, data...)
	aw.updateStats(func(s *Stats) {
		s.WriteCount++
		s.Buffered = len(aw.buffer)
	})

	if len(aw.buffer) >= aw.config.BufferSize {
		return aw.flush()
	}
	return nil
}

// flush writes the buffer to the underlying writer. A failed flush drops the
// buffered data so later writes are not blocked behind it.
func (aw *asyncWriter) flush() error {
	if len(aw.buffer) == 0 {
		return nil
	}

	n, err := aw.underlying.Write(aw.buffer)
	if err == nil && n < len(aw.buffer) {
		err = io.ErrShortWrite
	}
	aw.buffer = aw.buffer[:0]

	aw.updateStats(func(s *Stats) {
		s.FlushCount++
		s.BytesWritten += int64(n)
		s.Buffered = 0
		if err != nil {
			s.ErrorCount++
		}
	})

	if m := aw.config.Metrics; m != nil {
		m.WriterFlushes.WithLabelValues(aw.config.Name).Inc()
		m.WriterBytesWritten.WithLabelValues(aw.config.Name).Add(float64(n))
	}

	if err != nil {
		return fmt.Errorf("writer %s: flush: %w", aw.config.Name, err)
	}
	return nil
}

func (aw *asyncWriter) updateStats(updater func(*Stats)) {
	aw.statsMu.Lock()
	defer aw.statsMu.Unlock()
	updater(&aw.stats)
}
