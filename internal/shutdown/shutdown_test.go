package shutdown

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// signal.Notify starts a runtime goroutine that lives for the whole process.
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("os/signal.loop"))
}

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := WithSignals(context.Background())
	cancel()
	waitDone(t, ctx)
}

func TestParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithSignals(parent)
	defer cancel()

	cancelParent()
	waitDone(t, ctx)
}
