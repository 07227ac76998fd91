package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/vnykmshr/rainbow/pkg/common/errors"
)

func TestSampleItemsNonEmpty(t *testing.T) {
	for i := 0; i < 3; i++ {
		require.NotEmpty(t, SampleItems())
	}
}

func TestSampleItemsDeterministic(t *testing.T) {
	first := SampleItems()
	second := SampleItems()
	require.Equal(t, first, second)

	// Mutating one result must not leak into the next call.
	first[0].Name = "changed"
	first = first[:1]
	third := SampleItems()
	assert.Equal(t, "drone", third[0].Name)
	assert.Equal(t, second, third)
}

func TestSampleItemsInvariants(t *testing.T) {
	for _, item := range SampleItems() {
		t.Run(item.Name, func(t *testing.T) {
			assert.Equal(t, item.UnitPrice*float64(item.Quantity), item.TotalPrice)
			assert.GreaterOrEqual(t, item.TotalPrice, 0.0)
			assert.True(t, item.Category.Valid(), "category %d", item.Category)
			assert.Contains(t, Categories(), item.Category)
		})
	}
}

func TestNewItemDerivesStableID(t *testing.T) {
	a, err := NewItem("tshirt", Clothing, 50, 2)
	require.NoError(t, err)
	b, err := NewItem("tshirt", Clothing, 50, 2)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 100.0, a.TotalPrice)

	other, err := NewItem("novel", Books, 20, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, other.ID)
}

func TestNewItemRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		itemName  string
		category  Category
		unitPrice float64
		quantity  int
	}{
		{"empty name", "", Books, 1, 1},
		{"unknown category", "widget", Category(99), 1, 1},
		{"negative price", "widget", Books, -0.5, 1},
		{"negative quantity", "widget", Books, 1, -1},
		{"NaN price", "widget", Books, math.NaN(), 1},
		{"infinite price", "widget", Books, math.Inf(1), 1},
		{"infinite price with zero quantity", "widget", Books, math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItem(tt.itemName, tt.category, tt.unitPrice, tt.quantity)
			require.Error(t, err)
			assert.True(t, gferrors.IsValidationError(err))
		})
	}
}

func TestMustItemPanics(t *testing.T) {
	assert.Panics(t, func() { MustItem("", Books, 1, 1) })
}

func TestCategory(t *testing.T) {
	assert.Equal(t, 40, Books.Code())
	assert.Equal(t, "Books", Books.Label())
	assert.Equal(t, "BOOKS", Books.String())
	assert.Equal(t, "Category(7)", Category(7).String())
	assert.Equal(t, "Unknown", Category(7).Label())

	for _, c := range Categories() {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("TOYS")
	assert.True(t, gferrors.IsValidationError(err))
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(map[Category]int{Books: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"BOOKS":4}`, string(data))

	var decoded struct {
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"category":"SPORTS"}`), &decoded))
	assert.Equal(t, Sports, decoded.Category)

	_, err = json.Marshal(Category(3))
	assert.Error(t, err)
}

func TestComparatorsAndPredicates(t *testing.T) {
	cheap := MustItem("novel", Books, 20, 1)
	dear := MustItem("tshirt", Clothing, 50, 2)

	assert.Equal(t, -1, ByTotalPrice(cheap, dear))
	assert.Equal(t, 1, ByTotalPrice(dear, cheap))
	assert.Equal(t, 0, ByTotalPrice(cheap, cheap))
	assert.Equal(t, 1, Descending(ByTotalPrice)(cheap, dear))

	assert.True(t, TotalPriceAbove(50)(dear))
	assert.False(t, TotalPriceAbove(100)(dear))
	assert.True(t, InCategory(Books)(cheap))
	assert.False(t, InCategory(Books)(dear))
}
