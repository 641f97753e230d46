package suggestion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/domain"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s *stubCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func newTestThrottle(catalog *stubCatalog) *Throttle {
	return NewThrottle(NewEngine(), catalog, DefaultMinInterval, zap.NewNop())
}

func mainCourse() domain.Product {
	return catalogProduct(10, "Pad Thai", domain.CategoryMain, true)
}

func TestTryShowSuggestionOpensPrompt(t *testing.T) {
	throttle := newTestThrottle(&stubCatalog{products: testCatalog()})

	suggestions, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)

	require.True(t, opened)
	assert.NotEmpty(t, suggestions)
	assert.Equal(t, domain.PromptOpen, throttle.State())
}

func TestTryShowSuggestionSingleFlight(t *testing.T) {
	throttle := newTestThrottle(&stubCatalog{products: testCatalog()})

	_, first := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	_, second := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)

	assert.True(t, first)
	assert.False(t, second, "second call while the prompt is open must be a no-op")
}

func TestTryShowSuggestionConcurrentCallsOpenOnce(t *testing.T) {
	throttle := newTestThrottle(&stubCatalog{products: testCatalog()})

	var wg sync.WaitGroup
	var mu sync.Mutex
	openedCount := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil); opened {
				mu.Lock()
				openedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, openedCount)
}

func TestTryShowSuggestionRespectsMinInterval(t *testing.T) {
	throttle := newTestThrottle(&stubCatalog{products: testCatalog()})

	current := time.Now()
	throttle.SetClock(func() time.Time { return current })

	_, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	require.True(t, opened)
	throttle.OnPromptClosed()

	// Closed but still inside the interval
	current = current.Add(500 * time.Millisecond)
	_, opened = throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	assert.False(t, opened)

	// Past the interval
	current = current.Add(600 * time.Millisecond)
	_, opened = throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	assert.True(t, opened)
}

func TestEmptyResultDoesNotOpenPrompt(t *testing.T) {
	// Catalog has nothing to suggest for a main course
	throttle := newTestThrottle(&stubCatalog{products: []domain.Product{mainCourse()}})

	suggestions, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)

	assert.False(t, opened)
	assert.Empty(t, suggestions)
	assert.Equal(t, domain.PromptIdle, throttle.State())
}

func TestEmptyResultDoesNotStampInterval(t *testing.T) {
	catalog := &stubCatalog{products: []domain.Product{mainCourse()}}
	throttle := newTestThrottle(catalog)

	current := time.Now()
	throttle.SetClock(func() time.Time { return current })

	_, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	require.False(t, opened)

	// Suggestions become available immediately afterwards; nothing was
	// shown, so the interval must not block this attempt.
	catalog.products = testCatalog()
	_, opened = throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	assert.True(t, opened)
}

func TestCatalogFailureDegradesToNoSuggestion(t *testing.T) {
	throttle := newTestThrottle(&stubCatalog{err: errors.New("connection refused")})

	suggestions, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)

	assert.False(t, opened)
	assert.Empty(t, suggestions)
	assert.Equal(t, domain.PromptIdle, throttle.State())
}

func TestOnPromptClosedIdempotent(t *testing.T) {
	throttle := newTestThrottle(&stubCatalog{products: testCatalog()})

	_, opened := throttle.TryShowSuggestion(context.Background(), mainCourse(), nil)
	require.True(t, opened)

	throttle.OnPromptClosed()
	throttle.OnPromptClosed()

	assert.Equal(t, domain.PromptIdle, throttle.State())
}
