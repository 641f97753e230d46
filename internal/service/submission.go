package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/backend"
	"github.com/jafarshop/kiosk/internal/cart"
	"github.com/jafarshop/kiosk/internal/domain"
)

var (
	// ErrEmptyCustomerName rejects a submit with a blank customer name
	ErrEmptyCustomerName = errors.New("customer name is required")
	// ErrEmptyCart rejects a submit of an empty cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionInProgress rejects a submit while one is already running
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	// ErrSubmissionFailed is the single generic failure surfaced for any
	// backend-side problem, including insufficient stock
	ErrSubmissionFailed = errors.New("order submission failed, possibly insufficient stock")
)

// InvalidTransitionError reports a submission status transition the state
// machine does not allow
type InvalidTransitionError struct {
	From domain.SubmissionStatus
	To   domain.SubmissionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid submission transition from %s to %s", e.From, e.To)
}

// OrderCreator is the slice of the backend client the workflow needs
type OrderCreator interface {
	CreateOrder(ctx context.Context, order backend.OrderRequest) (int64, error)
}

// SubmissionWorkflow drives cart checkout: Idle -> Submitting ->
// Confirmed or Failed. A failed submission leaves the cart untouched and
// the workflow retryable; a confirmed one is terminal for the session and
// clearing the cart stays the caller's explicit move (tied to showing the
// confirmation screen, not buried in here).
type SubmissionWorkflow struct {
	cart    *cart.Store
	creator OrderCreator
	logger  *zap.Logger

	mu     sync.Mutex
	status domain.SubmissionStatus
}

// NewSubmissionWorkflow creates a workflow in the Idle state
func NewSubmissionWorkflow(cartStore *cart.Store, creator OrderCreator, logger *zap.Logger) *SubmissionWorkflow {
	return &SubmissionWorkflow{
		cart:    cartStore,
		creator: creator,
		logger:  logger,
		status:  domain.SubmissionIdle,
	}
}

// Status returns the current workflow status
func (w *SubmissionWorkflow) Status() domain.SubmissionStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Submit validates the input, snapshots the cart into an order request and
// sends it to the backend. Validation failures are rejected locally before
// any network call. On success the assigned order ID is returned; on any
// backend failure ErrSubmissionFailed is returned and the cart is left
// intact for retry.
func (w *SubmissionWorkflow) Submit(ctx context.Context, customerName string) (int64, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return 0, ErrEmptyCustomerName
	}

	w.mu.Lock()
	if w.status == domain.SubmissionSubmitting {
		w.mu.Unlock()
		return 0, ErrSubmissionInProgress
	}
	if !w.status.CanTransitionTo(domain.SubmissionSubmitting) {
		err := &InvalidTransitionError{From: w.status, To: domain.SubmissionSubmitting}
		w.mu.Unlock()
		return 0, err
	}

	// Snapshot before leaving the lock: lines and total come from the same
	// copy, so a concurrent cart mutation can't skew the request mid-build.
	snapshot := w.cart.Items()
	if len(snapshot) == 0 {
		w.mu.Unlock()
		return 0, ErrEmptyCart
	}
	request := buildOrderRequest(customerName, snapshot)
	w.status = domain.SubmissionSubmitting
	w.mu.Unlock()

	orderID, err := w.creator.CreateOrder(ctx, request)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.status = domain.SubmissionFailed
		w.logger.Error("order submission failed",
			zap.String("customer_name", customerName),
			zap.Error(err),
		)
		return 0, ErrSubmissionFailed
	}

	w.status = domain.SubmissionConfirmed
	w.logger.Info("order confirmed",
		zap.Int64("order_id", orderID),
		zap.Int("lines", len(snapshot)),
	)
	return orderID, nil
}

// buildOrderRequest projects a cart snapshot into the backend order
// payload. Options are comma-joined, which cannot round-trip an option
// containing a literal comma.
func buildOrderRequest(customerName string, snapshot domain.CartSnapshot) backend.OrderRequest {
	items := make([]backend.OrderLineRequest, 0, len(snapshot))
	total := decimal.Zero
	for _, line := range snapshot {
		total = total.Add(line.LineTotal())
		items = append(items, backend.OrderLineRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price.InexactFloat64(),
			Options:   strings.Join(line.Options, ","),
		})
	}
	return backend.OrderRequest{
		CustomerName: customerName,
		TotalPrice:   total.InexactFloat64(),
		Items:        items,
	}
}
