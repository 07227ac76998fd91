package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/vnykmshr/rainbow/pkg/catalog"
	"github.com/vnykmshr/rainbow/pkg/metrics"
	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
)

// Demonstration groups.
const (
	GroupConstructor = "constructor"
	GroupOperator    = "operator"
	GroupCollector   = "collector"
)

var (
	// ErrUnknownDemo is returned when looking up a name that is not registered.
	ErrUnknownDemo = errors.New("unknown demo")

	// ErrUnknownGroup is returned when selecting a group that does not exist.
	ErrUnknownGroup = errors.New("unknown demo group")
)

// Demo is one runnable demonstration.
type Demo struct {
	Name        string
	Group       string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// Key returns "group/name".
func (d Demo) Key() string {
	return d.Group + "/" + d.Name
}

// Env is what a demonstration reads from and writes to.
type Env struct {
	// Out receives the demonstration's output. Stream stages may write to it
	// from their own goroutines, so NewEnv serializes access.
	Out io.Writer

	// SourceFile is read by the from-file demonstration. When empty it reads
	// its own embedded source.
	SourceFile string

	// Metrics counts the cart items each demonstration streams. Nil disables it.
	Metrics *metrics.Registry

	// Items supplies the cart. Nil means catalog.SampleItems.
	Items func() []catalog.CartItem
}

// NewEnv returns an Env writing to out.
func NewEnv(out io.Writer) *Env {
	return &Env{Out: &lockedWriter{w: out}}
}

// cart streams a fresh copy of the cart, counting items under name when
// metrics are enabled.
func (e *Env) cart(name string) stream.Stream[catalog.CartItem] {
	items := catalog.SampleItems
	if e.Items != nil {
		items = e.Items
	}

	s := stream.FromSlice(items())
	if e.Metrics != nil {
		s = stream.Instrument(s, name, e.Metrics)
	}
	return s
}

func (e *Env) println(v ...any) {
	_, _ = fmt.Fprintln(e.Out, v...)
}

func (e *Env) printf(format string, v ...any) {
	_, _ = fmt.Fprintf(e.Out, format, v...)
}

// printJSON writes v as a single JSON line.
func (e *Env) printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	e.println(string(b))
	return nil
}

// printIndented writes v as indented JSON.
func (e *Env) printIndented(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	e.println(string(b))
	return nil
}

// forEachJSON prints every element of s as a JSON line. An encoding failure
// is reported after the stream finishes.
func forEachJSON[T any](ctx context.Context, env *Env, s stream.Stream[T]) error {
	var encodeErr error
	err := s.ForEach(ctx, func(v T) {
		if err := env.printJSON(v); err != nil && encodeErr == nil {
			encodeErr = err
		}
	})
	return errors.Join(err, encodeErr)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
