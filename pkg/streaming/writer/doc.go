/*
Package writer provides an asynchronous buffered io.Writer.

AsyncWriter buffers data in memory and writes to the underlying writer from a
background goroutine, so callers can share it across goroutines without
interleaving partial writes.

# Quick Start

	w := writer.New(os.Stdout)
	defer w.Close()

	fmt.Fprintln(w, "Hello, async world!")
	w.Flush(context.Background())

# Configuration

	w := writer.NewWithConfig(os.Stdout, writer.Config{
		Name:          "console",
		BufferSize:    4 * 1024,
		FlushInterval: 100 * time.Millisecond,
		Metrics:       metrics.DefaultRegistry,
		OnError:       func(err error) { slog.Error("flush failed", "error", err) },
	})

The buffer is flushed when it reaches BufferSize, on every FlushInterval tick,
on Flush and on Close. A failed flush drops the buffered data and is reported
to the caller that triggered it, or to OnError for interval flushes.

# Statistics

	stats := w.Stats()
	fmt.Printf("bytes=%d flushes=%d errors=%d\n",
		stats.BytesWritten, stats.FlushCount, stats.ErrorCount)
*/
package writer
