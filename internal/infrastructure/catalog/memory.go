package catalog

import (
	"context"
	"sync"

	"github.com/cardcompass/backend/internal/domain"
)

// MemoryCatalog is a thread-safe in-memory card repository. The catalog is
// immutable per request: scoring only ever reads it, and replacements swap
// the whole set.
type MemoryCatalog struct {
	mu    sync.RWMutex
	cards []*domain.Card
	byID  map[string]*domain.Card
}

// NewMemoryCatalog creates an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{byID: make(map[string]*domain.Card)}
}

// Load replaces the catalog contents.
func (c *MemoryCatalog) Load(cards []*domain.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cards = cards
	c.byID = make(map[string]*domain.Card, len(cards))
	for _, card := range cards {
		c.byID[card.ID] = card
	}
}

// ListActive returns the active cards matching the filter, in load order.
func (c *MemoryCatalog) ListActive(ctx context.Context, filter domain.CardFilter) ([]*domain.Card, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []*domain.Card
	for _, card := range c.cards {
		if !card.Active {
			continue
		}
		if !filter.Matches(card) {
			continue
		}
		result = append(result, card)
	}
	return result, nil
}

// GetByID looks a card up by id regardless of active state.
func (c *MemoryCatalog) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	card, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return card, nil
}

// Size returns the number of cards loaded (for startup logging).
func (c *MemoryCatalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}
