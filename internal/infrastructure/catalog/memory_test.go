package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardcompass/backend/internal/domain"
)

func loadedCatalog() *MemoryCatalog {
	c := NewMemoryCatalog()
	c.Load(SeedCards())
	return c
}

func TestMemoryCatalog_ListActive(t *testing.T) {
	c := loadedCatalog()
	ctx := context.Background()

	cards, err := c.ListActive(ctx, domain.CardFilter{})
	require.NoError(t, err)
	assert.Len(t, cards, c.Size())

	t.Run("inactive cards are excluded", func(t *testing.T) {
		seeds := SeedCards()
		seeds[0].Active = false
		filtered := NewMemoryCatalog()
		filtered.Load(seeds)

		cards, err := filtered.ListActive(ctx, domain.CardFilter{})
		require.NoError(t, err)
		assert.Len(t, cards, len(seeds)-1)
		for _, card := range cards {
			assert.NotEqual(t, seeds[0].ID, card.ID)
		}
	})

	t.Run("load order is preserved", func(t *testing.T) {
		seeds := SeedCards()
		cards, err := c.ListActive(ctx, domain.CardFilter{})
		require.NoError(t, err)
		for i := range cards {
			assert.Equal(t, seeds[i].ID, cards[i].ID)
		}
	})
}

func TestMemoryCatalog_ListActive_Filters(t *testing.T) {
	c := loadedCatalog()
	ctx := context.Background()

	t.Run("by type case-insensitive", func(t *testing.T) {
		cards, err := c.ListActive(ctx, domain.CardFilter{Type: "Cashback"})
		require.NoError(t, err)
		require.NotEmpty(t, cards)
		for _, card := range cards {
			assert.Equal(t, "cashback", card.Type)
		}
	})

	t.Run("by issuer", func(t *testing.T) {
		cards, err := c.ListActive(ctx, domain.CardFilter{Issuer: "HDFC Bank"})
		require.NoError(t, err)
		require.NotEmpty(t, cards)
		for _, card := range cards {
			assert.Equal(t, "HDFC Bank", card.Issuer)
		}
	})

	t.Run("by max annual fee", func(t *testing.T) {
		maxFee := 500.0
		cards, err := c.ListActive(ctx, domain.CardFilter{MaxAnnualFee: &maxFee})
		require.NoError(t, err)
		require.NotEmpty(t, cards)
		for _, card := range cards {
			assert.LessOrEqual(t, card.AnnualFee, maxFee)
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		maxFee := 0.0
		cards, err := c.ListActive(ctx, domain.CardFilter{Type: "cashback", MaxAnnualFee: &maxFee})
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "icici-amazon-pay", cards[0].ID)
	})

	t.Run("no match yields empty list", func(t *testing.T) {
		cards, err := c.ListActive(ctx, domain.CardFilter{Issuer: "Unknown Bank"})
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestMemoryCatalog_GetByID(t *testing.T) {
	c := loadedCatalog()
	ctx := context.Background()

	card, err := c.GetByID(ctx, "axis-ace")
	require.NoError(t, err)
	assert.Equal(t, "Axis Bank Ace Credit Card", card.Name)

	_, err = c.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestSeedCards(t *testing.T) {
	seeds := SeedCards()
	require.NotEmpty(t, seeds)

	ids := make(map[string]bool, len(seeds))
	for _, card := range seeds {
		assert.False(t, ids[card.ID], "duplicate id %s", card.ID)
		ids[card.ID] = true

		assert.NotEmpty(t, card.Name)
		assert.NotEmpty(t, card.Issuer)
		assert.True(t, card.Active, "%s must be active", card.ID)
		assert.NotEmpty(t, card.RewardRates, "%s needs reward rates", card.ID)

		// Every card must answer a rate for any category via its catch-all.
		assert.Greater(t, card.RewardRateFor("some-unknown-category"), 0.0, card.ID)
	}
}
