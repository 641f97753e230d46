package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/config"
	"github.com/jafarshop/kiosk/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
	return client, server
}

func TestCategories(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Starters"},{"id":2,"name":"Mains"}]`))
	}))

	categories, err := client.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, domain.Category{ID: 1, Name: "Starters"}, categories[0])
}

func TestProductsDecoding(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":10,"name":"Pad Thai","price":8.5,"description":"noodles","categoryId":2,"imageUrl":"pad.png","spicy":true,"available":true,"stockQuantity":12}]`))
	}))

	products, err := client.Products(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, "Pad Thai", p.Name)
	assert.Equal(t, "8.50", p.Price.StringFixed(2))
	assert.Equal(t, domain.CategoryMain, p.CategoryID)
	assert.True(t, p.Spicy)
	assert.True(t, p.Available)
	assert.Equal(t, 12, p.StockQuantity)
}

func TestProductsByCategoryQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("category"))
		w.Write([]byte(`[]`))
	}))

	products, err := client.ProductsByCategory(context.Background(), 3)

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogErrorOnBadStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Products(context.Background())
	assert.Error(t, err)
}

func TestCreateOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))

		var order OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "Alice", order.CustomerName)
		assert.InDelta(t, 16.0, order.TotalPrice, 1e-9)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "rice", order.Items[0].Options)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":42}`))
	}))

	orderID, err := client.CreateOrder(context.Background(), OrderRequest{
		CustomerName: "Alice",
		TotalPrice:   16.0,
		Items: []OrderLineRequest{
			{ProductID: 10, Quantity: 2, UnitPrice: 8.0, Options: "rice"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
}

func TestCreateOrderNon201IsFailure(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"orderId":42}`))
		}))

		_, err := client.CreateOrder(context.Background(), OrderRequest{CustomerName: "Alice"})
		assert.Error(t, err, "status %d must be treated as failure", status)
	}
}

func TestCreateOrderMissingOrderID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	_, err := client.CreateOrder(context.Background(), OrderRequest{CustomerName: "Alice"})
	assert.Error(t, err)
}

func TestCreateOrderMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`not json`))
	}))

	_, err := client.CreateOrder(context.Background(), OrderRequest{CustomerName: "Alice"})
	assert.Error(t, err)
}

func TestTransportErrorSurfaces(t *testing.T) {
	client := NewClient(config.BackendConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	}, zap.NewNop())

	_, err := client.Products(context.Background())
	assert.Error(t, err)

	_, err = client.CreateOrder(context.Background(), OrderRequest{CustomerName: "Alice"})
	assert.Error(t, err)
}
