package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/kiosk/internal/domain"
)

// Store holds the in-progress order for one kiosk session. All mutation
// goes through the store's mutex: handlers run on whatever goroutine the
// HTTP layer gives them, so the mutex is what serializes cart access onto
// a single logical owner.
type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{}
}

// AddProduct adds quantity units of product with the given options. If a
// line with the same (product ID, options) key already exists its quantity
// is incremented; otherwise a new line is appended. Repeated adds are the
// defined merge behavior, not an error. Calls with quantity < 1 are
// ignored.
func (s *Store) AddProduct(product domain.Product, quantity int, options []string) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].SameKey(product.ID, options) {
			s.lines[i].Quantity += quantity
			return
		}
	}

	// Copy the options so the caller can't mutate the line afterwards
	opts := make([]string, len(options))
	copy(opts, options)

	s.lines = append(s.lines, domain.CartLine{
		Product:  product,
		Quantity: quantity,
		Options:  opts,
	})
}

// RemoveItem removes the line at the given position. Out-of-range indexes
// are a no-op: the UI may race a stale index against an async re-render.
func (s *Store) RemoveItem(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
}

// UpdateQuantity sets the quantity of the line at index. No-op unless the
// index is valid and newQuantity is positive; removal on a non-positive
// quantity is the caller's policy, never the store's.
func (s *Store) UpdateQuantity(index, newQuantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) || newQuantity <= 0 {
		return
	}
	s.lines[index].Quantity = newQuantity
}

// Clear empties the cart. Called when an order cycle ends after
// confirmation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
}

// Total returns the sum of quantity x unit price over all lines, derived
// from current line state on every call. Zero for an empty cart.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount returns the number of distinct lines in the cart.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.lines)
}

// TotalProductCount returns the sum of quantities over all lines. Not the
// same thing as ItemCount.
func (s *Store) TotalProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Items returns a snapshot of the cart lines. The snapshot is a deep copy:
// mutating it never affects the store.
func (s *Store) Items() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(domain.CartSnapshot, len(s.lines))
	for i, line := range s.lines {
		opts := make([]string, len(line.Options))
		copy(opts, line.Options)
		line.Options = opts
		snapshot[i] = line
	}
	return snapshot
}
