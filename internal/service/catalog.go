package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/domain"
)

// ErrProductNotFound is returned when a product ID is absent from the catalog
var ErrProductNotFound = errors.New("product not found in catalog")

// catalogClient is the slice of the backend client the gateway needs
type catalogClient interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
}

// CatalogGateway fronts the backend catalog for the rest of the engine.
// On any backend failure it logs, returns an empty (never nil) collection
// and passes the error along so the caller can tell a connectivity problem
// from a genuinely empty menu. It never panics.
type CatalogGateway struct {
	client catalogClient
	logger *zap.Logger
}

// NewCatalogGateway creates a new catalog gateway
func NewCatalogGateway(client catalogClient, logger *zap.Logger) *CatalogGateway {
	return &CatalogGateway{
		client: client,
		logger: logger,
	}
}

// Categories returns all menu categories, or an empty slice on failure
func (g *CatalogGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := g.client.Categories(ctx)
	if err != nil {
		g.logger.Error("catalog categories fetch failed", zap.Error(err))
		return []domain.Category{}, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// Products returns the full catalog, or an empty slice on failure
func (g *CatalogGateway) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := g.client.Products(ctx)
	if err != nil {
		g.logger.Error("catalog products fetch failed", zap.Error(err))
		return []domain.Product{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// ProductsByCategory returns one category's products, or an empty slice on
// failure
func (g *CatalogGateway) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	products, err := g.client.ProductsByCategory(ctx, categoryID)
	if err != nil {
		g.logger.Error("catalog products fetch failed",
			zap.Int64("category_id", categoryID),
			zap.Error(err),
		)
		return []domain.Product{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// FindProduct looks a single product up by ID in the current catalog
func (g *CatalogGateway) FindProduct(ctx context.Context, productID int64) (domain.Product, error) {
	products, err := g.client.Products(ctx)
	if err != nil {
		g.logger.Error("catalog products fetch failed", zap.Error(err))
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}
