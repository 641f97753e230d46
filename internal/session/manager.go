package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/cart"
	"github.com/jafarshop/kiosk/internal/service"
	"github.com/jafarshop/kiosk/internal/suggestion"
)

// ErrSessionNotFound is returned when a session ID is unknown or already
// completed
var ErrSessionNotFound = errors.New("session not found")

// Session is one ordering session: the cart, the suggestion throttle and
// the submission workflow, bound together for the life of a single order
// cycle. There is no process-wide cart; every component that needs the
// cart reaches it through its session.
type Session struct {
	ID        uuid.UUID
	Cart      *cart.Store
	Throttle  *suggestion.Throttle
	Workflow  *service.SubmissionWorkflow
	CreatedAt time.Time
}

// Manager owns the live sessions. Sessions are in-memory only: a kiosk
// order cycle does not survive a process restart.
type Manager struct {
	gateway     *service.CatalogGateway
	creator     service.OrderCreator
	minInterval time.Duration
	logger      *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager
func NewManager(gateway *service.CatalogGateway, creator service.OrderCreator, minInterval time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		gateway:     gateway,
		creator:     creator,
		minInterval: minInterval,
		logger:      logger,
		sessions:    make(map[uuid.UUID]*Session),
	}
}

// Create starts a new ordering session with an empty cart
func (m *Manager) Create() *Session {
	cartStore := cart.NewStore()
	s := &Session{
		ID:        uuid.New(),
		Cart:      cartStore,
		Throttle:  suggestion.NewThrottle(suggestion.NewEngine(), m.gateway, m.minInterval, m.logger),
		Workflow:  service.NewSubmissionWorkflow(cartStore, m.creator, m.logger),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", s.ID.String()))
	return s
}

// Get returns the session with the given ID
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Complete ends an order cycle: the cart is cleared and the session
// dropped, so the next customer starts from a fresh one. Called by the
// presentation layer after the confirmation screen.
func (m *Manager) Complete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.Cart.Clear()
	delete(m.sessions, id)

	m.logger.Info("session completed", zap.String("session_id", id.String()))
	return nil
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
