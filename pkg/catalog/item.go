package catalog

import (
	"github.com/google/uuid"

	gferrors "github.com/vnykmshr/rainbow/pkg/common/errors"
	"github.com/vnykmshr/rainbow/pkg/common/validation"
)

// itemNamespace seeds the name-based item IDs so they are stable across runs.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vnykmshr/rainbow/catalog"))

// CartItem is one product line in a shopping cart.
type CartItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   Category  `json:"category"`
	UnitPrice  float64   `json:"unitPrice"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"totalPrice"`
}

// NewItem builds a CartItem and derives its ID and total price.
func NewItem(name string, category Category, unitPrice float64, quantity int) (CartItem, error) {
	if err := validation.ValidateNotEmpty("catalog", "name", name); err != nil {
		return CartItem{}, err
	}
	if !category.Valid() {
		return CartItem{}, gferrors.NewValidationError("catalog", "category", int(category), "unknown category").
			WithHint("use one of catalog.Categories()")
	}
	if err := validation.ValidateNonNegative("catalog", "unitPrice", unitPrice); err != nil {
		return CartItem{}, err
	}
	if err := validation.ValidateNonNegativeInt("catalog", "quantity", quantity); err != nil {
		return CartItem{}, err
	}

	return CartItem{
		ID:         uuid.NewSHA1(itemNamespace, []byte(name)),
		Name:       name,
		Category:   category,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		TotalPrice: unitPrice * float64(quantity),
	}, nil
}

// MustItem is NewItem for fixtures; it panics on invalid input.
func MustItem(name string, category Category, unitPrice float64, quantity int) CartItem {
	item, err := NewItem(name, category, unitPrice, quantity)
	if err != nil {
		panic(err)
	}
	return item
}

// ByTotalPrice orders items by ascending total price.
func ByTotalPrice(a, b CartItem) int {
	switch {
	case a.TotalPrice < b.TotalPrice:
		return -1
	case a.TotalPrice > b.TotalPrice:
		return 1
	}
	return 0
}

// Descending reverses a comparator.
func Descending[T any](compare func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return compare(b, a) }
}

// TotalPriceAbove matches items whose total price is strictly greater than threshold.
func TotalPriceAbove(threshold float64) func(CartItem) bool {
	return func(item CartItem) bool { return item.TotalPrice > threshold }
}

// InCategory matches items of category c.
func InCategory(c Category) func(CartItem) bool {
	return func(item CartItem) bool { return item.Category == c }
}
