package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OrderRequest is the create-order payload expected by the backend
type OrderRequest struct {
	CustomerName string             `json:"customerName"`
	TotalPrice   float64            `json:"totalPrice"`
	Items        []OrderLineRequest `json:"items"`
}

// OrderLineRequest is one line of an order request. Options carries the
// selected options joined with a comma; an option string containing a
// literal comma cannot round-trip through this encoding. Known backend
// contract limitation, not special-cased here.
type OrderLineRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Options   string  `json:"options"`
}

// orderResponse is the body the backend returns on a created order
type orderResponse struct {
	OrderID int64 `json:"orderId"`
}

// CreateOrder submits an order and returns the assigned order ID. Success
// is exactly HTTP 201 with a body carrying a positive integer orderId;
// any other status is a failure and the body is not parsed further.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (int64, error) {
	resp, err := c.postJSON(ctx, "/orders", order)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("create order: backend returned status %d", resp.StatusCode)
	}

	var created orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("create order: malformed response: %w", err)
	}
	if created.OrderID <= 0 {
		return 0, fmt.Errorf("create order: response missing orderId")
	}
	return created.OrderID, nil
}
