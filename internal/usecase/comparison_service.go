package usecase

import (
	"context"

	"github.com/cardcompass/backend/internal/domain"
)

// Comparison limits: at least two cards to compare, at most five per request.
const (
	minCompareCards = 2
	maxCompareCards = 5
)

// FeeComparison summarizes the fee landscape across the compared cards.
type FeeComparison struct {
	LowestAnnualFee  float64  `json:"lowestAnnualFee"`
	LowestAnnualIn   []string `json:"lowestAnnualFeeCards"`
	LowestJoiningFee float64  `json:"lowestJoiningFee"`
	LowestJoiningIn  []string `json:"lowestJoiningFeeCards"`
	FreeCards        []string `json:"freeCards"`
}

// RewardRow is one card's rate in one category of the comparison table.
type RewardRow map[string]float64 // card name -> rate

// EligibilityComparison summarizes the easiest entry requirements.
type EligibilityComparison struct {
	LowestMinIncome       float64 `json:"lowestMinIncome"`
	LowestMinIncomeCard   string  `json:"lowestMinIncomeCard"`
	LowestCreditScore     int     `json:"lowestCreditScore"`
	LowestCreditScoreCard string  `json:"lowestCreditScoreCard"`
}

// CardComparison is the full side-by-side result.
type CardComparison struct {
	Cards       []*domain.Card        `json:"cards"`
	Fees        FeeComparison         `json:"fees"`
	Rewards     map[string]RewardRow  `json:"rewards"` // category -> card -> rate
	Eligibility EligibilityComparison `json:"eligibility"`
	BestRated   string                `json:"bestRated"`
}

// ComparisonService builds side-by-side card comparisons.
type ComparisonService struct {
	cards domain.CardRepository
}

// NewComparisonService creates a comparison service.
func NewComparisonService(cards domain.CardRepository) *ComparisonService {
	return &ComparisonService{cards: cards}
}

// Compare loads the requested cards and produces the comparison. Between two
// and five distinct card ids are required; an unknown id fails the whole
// request with ErrCardNotFound.
func (s *ComparisonService) Compare(ctx context.Context, cardIDs []string) (*CardComparison, error) {
	if len(cardIDs) < minCompareCards || len(cardIDs) > maxCompareCards {
		return nil, domain.ErrInvalidRequest
	}

	seen := make(map[string]bool, len(cardIDs))
	cards := make([]*domain.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] {
			return nil, domain.ErrInvalidRequest
		}
		seen[id] = true

		card, err := s.cards.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return &CardComparison{
		Cards:       cards,
		Fees:        compareFees(cards),
		Rewards:     compareRewards(cards),
		Eligibility: compareEligibility(cards),
		BestRated:   bestRated(cards),
	}, nil
}

func compareFees(cards []*domain.Card) FeeComparison {
	cmp := FeeComparison{
		LowestAnnualFee:  cards[0].AnnualFee,
		LowestJoiningFee: cards[0].JoiningFee,
	}
	for _, c := range cards {
		if c.AnnualFee < cmp.LowestAnnualFee {
			cmp.LowestAnnualFee = c.AnnualFee
		}
		if c.JoiningFee < cmp.LowestJoiningFee {
			cmp.LowestJoiningFee = c.JoiningFee
		}
	}
	for _, c := range cards {
		if c.AnnualFee == cmp.LowestAnnualFee {
			cmp.LowestAnnualIn = append(cmp.LowestAnnualIn, c.Name)
		}
		if c.JoiningFee == cmp.LowestJoiningFee {
			cmp.LowestJoiningIn = append(cmp.LowestJoiningIn, c.Name)
		}
		if c.AnnualFee == 0 && c.JoiningFee == 0 {
			cmp.FreeCards = append(cmp.FreeCards, c.Name)
		}
	}
	return cmp
}

func compareRewards(cards []*domain.Card) map[string]RewardRow {
	table := make(map[string]RewardRow)
	for _, c := range cards {
		for category := range c.RewardRates {
			if table[category] == nil {
				table[category] = make(RewardRow)
			}
		}
	}
	for category, row := range table {
		for _, c := range cards {
			row[c.Name] = c.RewardRateFor(category)
		}
	}
	return table
}

func compareEligibility(cards []*domain.Card) EligibilityComparison {
	cmp := EligibilityComparison{
		LowestMinIncome:       cards[0].Eligibility.MinIncome,
		LowestMinIncomeCard:   cards[0].Name,
		LowestCreditScore:     cards[0].MinCreditScore(),
		LowestCreditScoreCard: cards[0].Name,
	}
	for _, c := range cards[1:] {
		if c.Eligibility.MinIncome < cmp.LowestMinIncome {
			cmp.LowestMinIncome = c.Eligibility.MinIncome
			cmp.LowestMinIncomeCard = c.Name
		}
		if c.MinCreditScore() < cmp.LowestCreditScore {
			cmp.LowestCreditScore = c.MinCreditScore()
			cmp.LowestCreditScoreCard = c.Name
		}
	}
	return cmp
}

func bestRated(cards []*domain.Card) string {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rating > best.Rating {
			best = c
		}
	}
	return best.Name
}
