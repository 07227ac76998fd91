package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/rainbow/pkg/catalog"
	"github.com/vnykmshr/rainbow/pkg/streaming/stream"
)

func TestFilterByTotalPrice(t *testing.T) {
	items := []catalog.CartItem{
		catalog.MustItem("tshirt", catalog.Clothing, 50, 2),
		catalog.MustItem("novel", catalog.Books, 20, 1),
	}
	ctx := context.Background()

	none, err := stream.FromSlice(items).Filter(catalog.TotalPriceAbove(1000)).ToSlice(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)

	some, err := stream.FromSlice(items).Filter(catalog.TotalPriceAbove(50)).ToSlice(ctx)
	require.NoError(t, err)
	assert.Equal(t, items[:1], some)
}

func TestSortedDescendingHeadIsMax(t *testing.T) {
	ctx := context.Background()
	items := catalog.SampleItems()

	head, found, err := stream.FromSlice(items).
		Sorted(catalog.Descending(catalog.ByTotalPrice)).
		FindFirst(ctx)
	require.NoError(t, err)
	require.True(t, found)

	maxItem, found, err := stream.FromSlice(items).Max(ctx, catalog.ByTotalPrice)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, maxItem, head)
	assert.Equal(t, "drone", head.Name)
}

func TestSortedDescendingKeepsTieOrder(t *testing.T) {
	items := []catalog.CartItem{
		catalog.MustItem("first", catalog.Books, 10, 1),
		catalog.MustItem("cheap", catalog.Books, 1, 1),
		catalog.MustItem("second", catalog.Sports, 5, 2),
	}

	sorted, err := stream.FromSlice(items).
		Sorted(catalog.Descending(catalog.ByTotalPrice)).
		ToSlice(context.Background())
	require.NoError(t, err)

	names := make([]string, len(sorted))
	for i, item := range sorted {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"first", "second", "cheap"}, names)
}
