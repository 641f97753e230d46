package suggestion

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/domain"
)

// DefaultMinInterval is the minimum gap between two suggestion prompts
const DefaultMinInterval = 1000 * time.Millisecond

// CatalogSource supplies the product catalog for suggestion computation
type CatalogSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Throttle guards when a suggestion prompt may be shown: at most one
// prompt open at a time, and never two prompts within the minimum
// interval. The whole try runs under the mutex, so the Idle -> PromptOpen
// transition is a single check-and-set even when several add-item requests
// land at once.
type Throttle struct {
	engine      *Engine
	catalog     CatalogSource
	logger      *zap.Logger
	minInterval time.Duration
	now         func() time.Time

	mu        sync.Mutex
	state     domain.PromptState
	lastShown time.Time
}

// NewThrottle creates a throttle in the Idle state
func NewThrottle(engine *Engine, catalog CatalogSource, minInterval time.Duration, logger *zap.Logger) *Throttle {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Throttle{
		engine:      engine,
		catalog:     catalog,
		logger:      logger,
		minInterval: minInterval,
		now:         time.Now,
		state:       domain.PromptIdle,
	}
}

// SetClock overrides the time source. Tests use this to step through the
// minimum-interval window without sleeping.
func (t *Throttle) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// State returns the current prompt state
func (t *Throttle) State() domain.PromptState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// TryShowSuggestion computes suggestions for the trigger product and, when
// some exist, opens the prompt. Returns the suggestions and whether the
// prompt opened. The call is a no-op (nil, false) when a prompt is already
// open, when the last prompt was shown less than the minimum interval ago,
// or when the engine yields nothing to propose.
func (t *Throttle) TryShowSuggestion(ctx context.Context, trigger domain.Product, cart domain.CartSnapshot) ([]domain.Product, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != domain.PromptIdle {
		return nil, false
	}
	if !t.lastShown.IsZero() && t.now().Sub(t.lastShown) < t.minInterval {
		return nil, false
	}

	catalog, err := t.catalog.Products(ctx)
	if err != nil {
		// Degrade to no suggestion; the menu path reports connectivity
		t.logger.Warn("suggestion catalog fetch failed", zap.Error(err))
		return nil, false
	}

	suggestions := t.engine.Suggest(trigger, catalog, cart)
	if len(suggestions) == 0 {
		return nil, false
	}

	t.state = domain.PromptOpen
	t.lastShown = t.now()
	t.logger.Debug("suggestion prompt opened",
		zap.Int64("trigger_product_id", trigger.ID),
		zap.Int("suggestions", len(suggestions)),
	)
	return suggestions, true
}

// OnPromptClosed returns the throttle to Idle. The presentation layer
// calls it however the prompt ended (dismiss, selection, owner-window
// loss); closing is idempotent and always succeeds.
func (t *Throttle) OnPromptClosed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = domain.PromptIdle
}
