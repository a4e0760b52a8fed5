package usecase

import (
	"math"
	"sort"

	"github.com/cardcompass/backend/internal/domain"
)

// CategoryReward records the contribution of one spending category to a
// simulation, for display.
type CategoryReward struct {
	Spend  float64 `json:"spend"`  // annual
	Reward float64 `json:"reward"` // annual
	Rate   float64 `json:"rate"`   // percent
}

// Simulation is the projected annual outcome of using a card with the given
// spending habits.
type Simulation struct {
	CardID       string                    `json:"cardId"`
	CardName     string                    `json:"cardName"`
	AnnualReward float64                   `json:"annualReward"`
	AnnualFee    float64                   `json:"annualFee"`
	NetBenefit   float64                   `json:"netBenefit"`
	Breakdown    map[string]CategoryReward `json:"breakdown"`
}

// SimulateRewards projects the annual reward a card yields for the given
// monthly spending by category. Categories the card does not reward, and
// categories with zero spend, contribute nothing. An empty spending map is
// valid and yields zero reward. NetBenefit is exactly AnnualReward minus
// AnnualFee.
func SimulateRewards(card *domain.Card, monthlySpending map[string]float64) Simulation {
	sim := Simulation{
		CardID:    card.ID,
		CardName:  card.Name,
		AnnualFee: card.AnnualFee,
		Breakdown: make(map[string]CategoryReward),
	}

	// Iterate categories in sorted order so floating point accumulation
	// is reproducible across runs.
	categories := make([]string, 0, len(monthlySpending))
	for category := range monthlySpending {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	total := 0.0
	for _, category := range categories {
		monthly := monthlySpending[category]
		if monthly <= 0 {
			continue
		}
		rate := card.RewardRateFor(category)
		if rate <= 0 {
			continue
		}
		annualSpend := monthly * 12
		reward := annualSpend * rate / 100
		total += reward
		sim.Breakdown[category] = CategoryReward{
			Spend:  annualSpend,
			Reward: reward,
			Rate:   rate,
		}
	}

	sim.AnnualReward = math.Round(total)
	sim.NetBenefit = sim.AnnualReward - sim.AnnualFee
	return sim
}
