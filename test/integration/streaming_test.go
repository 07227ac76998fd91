package integration

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/rainbow/internal/testutil"
	"github.com/vnykmshr/rainbow/pkg/catalog"
	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
	"github.com/vnykmshr/rainbow/pkg/streaming/writer"
)

// TestChannelStreamToWriter feeds cart items through a channel-backed stream
// into an async writer.
func TestChannelStreamToWriter(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	underlying := testutil.NewMockWriter()
	w := writer.New(underlying)
	defer func() { _ = w.Close() }()

	ch := make(chan catalog.CartItem)
	go func() {
		defer close(ch)
		for _, item := range catalog.SampleItems() {
			ch <- item
		}
	}()

	books := stream.FromChannel(ch).Filter(catalog.InCategory(catalog.Books))
	err := stream.Map(books, func(it catalog.CartItem) string { return it.Name }).
		ForEach(ctx, func(name string) {
			_, _ = w.WriteString(name + "\n")
		})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.Flush(ctx))

	testutil.AssertEqual(t, underlying.String(),
		"thinking-in-java\ncore-java\nalgorithms\ntensorflow-guide\n")
}

// TestCartProcessingPipeline chains sorting, paging and peeking over the cart.
func TestCartProcessingPipeline(t *testing.T) {
	var peeked int32

	page, err := stream.FromSlice(catalog.SampleItems()).
		Sorted(catalog.Descending(catalog.ByTotalPrice)).
		Skip(3).
		Limit(3).
		Peek(func(catalog.CartItem) { atomic.AddInt32(&peeked, 1) }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	names := make([]string, len(page))
	for i, it := range page {
		names[i] = it.Name
	}
	testutil.AssertSliceEqual(t, names, []string{"plain-shirt", "jeans", "core-java"})
	testutil.AssertEqual(t, atomic.LoadInt32(&peeked), int32(3))
}

// TestFileStreamErrorsReachTerminal checks that a missing file surfaces as
// the terminal operation's error.
func TestFileStreamErrorsReachTerminal(t *testing.T) {
	_, err := stream.FromFile("/does/not/exist").Count(context.Background())
	testutil.AssertError(t, err)
	if !strings.Contains(err.Error(), "stream:") {
		t.Errorf("error %q lacks stream prefix", err)
	}
}

// TestWriterConcurrency checks that concurrent writers never lose bytes.
func TestWriterConcurrency(t *testing.T) {
	underlying := testutil.NewMockWriter()
	w := writer.NewWithConfig(underlying, writer.Config{BufferSize: 64})
	defer func() { _ = w.Close() }()

	const goroutines = 10
	const writesPerGoroutine = 100

	done := make(chan struct{}, goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < writesPerGoroutine; j++ {
				if _, err := w.WriteString("X"); err != nil {
					t.Errorf("write failed: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < goroutines; i++ {
		<-done
	}

	testutil.AssertNoError(t, w.Flush(context.Background()))

	expected := int64(goroutines * writesPerGoroutine)
	stats := w.Stats()
	testutil.AssertEqual(t, stats.WriteCount, expected)
	testutil.AssertEqual(t, stats.BytesWritten, expected)
	testutil.AssertEqual(t, len(underlying.String()), int(expected))
}

// TestStreamContextCancellation verifies that a slow infinite stream stops
// when its context expires.
func TestStreamContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	slow := stream.Generate(func() int {
		time.Sleep(10 * time.Millisecond)
		return 1
	})

	_, err := slow.Count(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
