package backend

import (
	"context"
	"fmt"

	"github.com/jafarshop/kiosk/internal/domain"
)

// Categories fetches all menu categories from the backend
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/categories", &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// Products fetches the full product catalog from the backend
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

// ProductsByCategory fetches the products of a single category
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	var products []domain.Product
	path := fmt.Sprintf("/products?category=%d", categoryID)
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("fetch products for category %d: %w", categoryID, err)
	}
	return products, nil
}
