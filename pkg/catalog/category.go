package catalog

import (
	"fmt"

	gferrors "github.com/vnykmshr/rainbow/pkg/common/errors"
)

// Category classifies a cart item. The set is closed.
type Category int

// Categories, numbered by their product code.
const (
	Clothing    Category = 10
	Electronics Category = 20
	Sports      Category = 30
	Books       Category = 40
)

var categoryNames = map[Category]string{
	Clothing:    "CLOTHING",
	Electronics: "ELECTRONICS",
	Sports:      "SPORTS",
	Books:       "BOOKS",
}

var categoryLabels = map[Category]string{
	Clothing:    "Clothing",
	Electronics: "Electronics",
	Sports:      "Sports",
	Books:       "Books",
}

// Categories returns every category in code order.
func Categories() []Category {
	return []Category{Clothing, Electronics, Sports, Books}
}

// ParseCategory returns the category with the given constant name.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, gferrors.NewValidationError("catalog", "category", name, "unknown category").
		WithHint("use one of CLOTHING, ELECTRONICS, SPORTS, BOOKS")
}

// Valid reports whether c belongs to the category set.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Code returns the numeric product code.
func (c Category) Code() int { return int(c) }

// Label returns the display label.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "Unknown"
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText renders the category by name, which also makes it usable as a JSON map key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("catalog: cannot marshal invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
