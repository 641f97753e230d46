package suggestion

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/jafarshop/kiosk/internal/domain"
)

// maxSuggestions caps how many companion products a prompt may carry
const maxSuggestions = 3

// Engine computes companion-product suggestions for a just-added product.
// The engine is deterministic: identical trigger, catalog and cart inputs
// always produce the identical ordered result, so the same dish proposes
// the same companions for the whole session. That determinism is a UX
// contract, which is why the random source is seeded from the trigger
// rather than taken from the global generator.
type Engine struct {
	newRand func(seed int64) *rand.Rand
}

// NewEngine creates a suggestion engine backed by math/rand sources
func NewEngine() *Engine {
	return &Engine{
		newRand: func(seed int64) *rand.Rand {
			return rand.New(rand.NewSource(seed))
		},
	}
}

// NewEngineWithSource creates an engine whose seeded random source is
// supplied by the caller. Used by tests to pin draw behavior.
func NewEngineWithSource(newRand func(seed int64) *rand.Rand) *Engine {
	return &Engine{newRand: newRand}
}

// Seed derives the deterministic draw seed for a trigger product. The seed
// is the FNV-1a 32-bit hash of the product name concatenated with the
// decimal product ID; changing this function changes which companions
// every dish proposes, so it is part of the engine's contract.
func Seed(trigger domain.Product) int64 {
	h := fnv.New32a()
	h.Write([]byte(trigger.Name + strconv.FormatInt(trigger.ID, 10)))
	seed := int64(int32(h.Sum32()))
	if seed < 0 {
		seed = -seed
	}
	return seed
}

// Suggest returns at most three distinct companion products for the
// trigger. Only main courses (category 2) produce suggestions under the
// current rule set; one product is drawn from each non-empty eligible
// partition in the fixed order dessert, drink, starter. Products that are
// the trigger, already in the cart, or unavailable are never suggested.
// An empty result means "no suggestion available", not a failure.
func (e *Engine) Suggest(trigger domain.Product, catalog []domain.Product, cart domain.CartSnapshot) []domain.Product {
	if trigger.CategoryID != domain.CategoryMain {
		return nil
	}

	eligible := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if p.ID == trigger.ID || !p.Available || cart.ContainsProduct(p.ID) {
			continue
		}
		eligible = append(eligible, p)
	}

	rng := e.newRand(Seed(trigger))

	var picks []domain.Product
	for _, categoryID := range []int64{domain.CategoryDessert, domain.CategoryDrink, domain.CategoryStarter} {
		var partition []domain.Product
		for _, p := range eligible {
			if p.CategoryID == categoryID {
				partition = append(partition, p)
			}
		}
		if len(partition) == 0 {
			continue
		}
		picks = append(picks, partition[rng.Intn(len(partition))])
	}

	// The partitioning already keeps picks distinct; the dedupe guards the
	// invariant anyway.
	seen := make(map[int64]bool, len(picks))
	result := picks[:0]
	for _, p := range picks {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		result = append(result, p)
		if len(result) == maxSuggestions {
			break
		}
	}
	return result
}
