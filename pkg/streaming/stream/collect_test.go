package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/vnykmshr/rainbow/internal/testutil"
)

func TestCollect(t *testing.T) {
	total, err := Collect(context.Background(), Of("hello", "world", "test"),
		func() map[string]int { return map[string]int{} },
		func(acc map[string]int, s string) map[string]int {
			acc[s] = len(s)
			return acc
		},
	)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(total), 3)
	testutil.AssertEqual(t, total["hello"], 5)
}

func TestGroupByKeepsOrder(t *testing.T) {
	groups, err := GroupBy(context.Background(), Range(0, 10), func(x int) int { return x % 3 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(groups), 3)
	testutil.AssertSliceEqual(t, groups[0], []int{0, 3, 6, 9})
	testutil.AssertSliceEqual(t, groups[1], []int{1, 4, 7})
	testutil.AssertSliceEqual(t, groups[2], []int{2, 5, 8})
}

func TestPartitionByAlwaysHasBothKeys(t *testing.T) {
	parts, err := PartitionBy(context.Background(), Of(1, 2, 3), func(x int) bool { return x > 10 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(parts), 2)
	testutil.AssertEqual(t, len(parts[true]), 0)
	testutil.AssertSliceEqual(t, parts[false], []int{1, 2, 3})

	if parts[true] == nil {
		t.Fatal("empty partition should be an empty slice, not nil")
	}
}

func TestJoining(t *testing.T) {
	joined, err := Joining(context.Background(), Range(1, 4), "-")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, joined, "1-2-3")

	empty, err := Joining(context.Background(), Empty[string](), ",")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, empty, "")
}

func TestCollectorsPropagateErrors(t *testing.T) {
	closed := FromSlice([]int{1})
	_ = closed.Close()

	_, err := GroupBy(context.Background(), closed, func(x int) int { return x })
	if !errors.Is(err, ErrStreamClosed) {
		t.Fatalf("expected ErrStreamClosed, got %v", err)
	}
}
