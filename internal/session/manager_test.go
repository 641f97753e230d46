package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/backend"
	"github.com/jafarshop/kiosk/internal/domain"
	"github.com/jafarshop/kiosk/internal/service"
)

type stubClient struct{}

func (s *stubClient) Categories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubClient) Products(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubClient) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return nil, nil
}

type stubCreator struct{}

func (s *stubCreator) CreateOrder(ctx context.Context, order backend.OrderRequest) (int64, error) {
	return 1, nil
}

func newTestManager() *Manager {
	logger := zap.NewNop()
	gateway := service.NewCatalogGateway(&stubClient{}, logger)
	return NewManager(gateway, &stubCreator{}, time.Second, logger)
}

func TestCreateAndGet(t *testing.T) {
	manager := newTestManager()

	s := manager.Create()
	require.NotNil(t, s)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.NotNil(t, s.Cart)
	assert.NotNil(t, s.Throttle)
	assert.NotNil(t, s.Workflow)

	got, err := manager.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestGetUnknownSession(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsAreIndependent(t *testing.T) {
	manager := newTestManager()

	a := manager.Create()
	b := manager.Create()

	a.Cart.AddProduct(domain.Product{ID: 1, Price: decimal.NewFromFloat(2.0)}, 1, nil)

	assert.Equal(t, 1, a.Cart.ItemCount())
	assert.Equal(t, 0, b.Cart.ItemCount())
}

func TestCompleteClearsAndDrops(t *testing.T) {
	manager := newTestManager()

	s := manager.Create()
	s.Cart.AddProduct(domain.Product{ID: 1, Price: decimal.NewFromFloat(2.0)}, 1, nil)
	require.Equal(t, 1, manager.Count())

	require.NoError(t, manager.Complete(s.ID))

	assert.Equal(t, 0, s.Cart.ItemCount())
	assert.Equal(t, 0, manager.Count())

	_, err := manager.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteUnknownSession(t *testing.T) {
	manager := newTestManager()
	assert.ErrorIs(t, manager.Complete(uuid.New()), ErrSessionNotFound)
}
