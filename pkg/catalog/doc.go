// Package catalog supplies the shopping-cart fixture that every stream
// demonstration runs against.
//
// CartItem is a plain comparable value; its TotalPrice is fixed at
// construction as UnitPrice × Quantity. SampleItems builds a new slice on every
// call, so callers may reorder or truncate it freely:
//
//	items := catalog.SampleItems()
//	books := slices.DeleteFunc(items, func(i catalog.CartItem) bool {
//		return i.Category != catalog.Books
//	})
package catalog
