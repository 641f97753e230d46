package domain

import (
	"github.com/shopspring/decimal"
)

// Category represents a menu category as served by the backend
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Menu category codes used by the backend catalog
const (
	CategoryStarter int64 = 1
	CategoryMain    int64 = 2
	CategoryDessert int64 = 3
	CategoryDrink   int64 = 4
)

// Product represents a catalog product. Products are fetched from the
// backend and treated as immutable for the life of a session; cart lines
// hold them by value so nothing downstream can alias a shared instance.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	CategoryID    int64           `json:"categoryId"`
	ImageURL      string          `json:"imageUrl"`
	Spicy         bool            `json:"spicy"`
	Available     bool            `json:"available"`
	StockQuantity int             `json:"stockQuantity"`
}

// CartLine is one row in the cart: a product, how many of it, and the
// selected options. Two lines are the same line only when they share the
// product ID and the exact option sequence, in order.
type CartLine struct {
	Product  Product  `json:"product"`
	Quantity int      `json:"quantity"`
	Options  []string `json:"options"`
}

// SameKey reports whether the line would merge with a line for the given
// product and options. Option comparison is order-sensitive.
func (l CartLine) SameKey(productID int64, options []string) bool {
	if l.Product.ID != productID || len(l.Options) != len(options) {
		return false
	}
	for i := range options {
		if l.Options[i] != options[i] {
			return false
		}
	}
	return true
}

// LineTotal returns quantity x unit price for this line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is an immutable copy of the cart lines at a point in time.
// Consumers may iterate it freely without observing concurrent mutation.
type CartSnapshot []CartLine

// ContainsProduct reports whether any line in the snapshot carries the
// given product ID, regardless of options.
func (s CartSnapshot) ContainsProduct(productID int64) bool {
	for _, line := range s {
		if line.Product.ID == productID {
			return true
		}
	}
	return false
}
