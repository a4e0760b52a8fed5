package usecase

import (
	"math"
	"strings"

	"github.com/cardcompass/backend/internal/domain"
)

// Sub-score weights. They sum to 1.0; the final score is the weighted sum
// of the five sub-scores on a 0-100 scale.
const (
	weightIncomeEligibility = 0.25
	weightSpendingMatch     = 0.30
	weightBenefitAlignment  = 0.20
	weightCreditScore       = 0.15
	weightCostBenefit       = 0.10
)

// neutralScore is used for any sub-score whose input is unknown, so an
// empty profile still yields a plausible mid-range total.
const neutralScore = 50.0

// Premium-tier adjustment applied after the weighted sum.
const (
	premiumIncomeFloor   = 1000000.0
	premiumHighIncomeAdj = 5.0
	premiumLowIncomeAdj  = -10.0
)

// ScoringService ranks catalog cards against a user profile. All methods are
// pure: scoring never mutates the card or the profile and is deterministic
// for a given input pair.
type ScoringService struct{}

// NewScoringService creates a scoring service.
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// SubScores carries the individual components of a card score, kept for
// explanation and debugging.
type SubScores struct {
	IncomeEligibility float64 `json:"incomeEligibility"`
	SpendingMatch     float64 `json:"spendingMatch"`
	BenefitAlignment  float64 `json:"benefitAlignment"`
	CreditScore       float64 `json:"creditScore"`
	CostBenefit       float64 `json:"costBenefit"`
}

// Score computes the card's overall fit for the profile as an integer in
// [0,100]. Missing profile inputs score neutral rather than zero.
func (s *ScoringService) Score(card *domain.Card, profile domain.UserProfile) int {
	score, _ := s.ScoreWithBreakdown(card, profile)
	return score
}

// ScoreWithBreakdown returns the overall score together with its sub-scores.
func (s *ScoringService) ScoreWithBreakdown(card *domain.Card, profile domain.UserProfile) (int, SubScores) {
	sub := SubScores{
		IncomeEligibility: s.incomeScore(card, profile),
		SpendingMatch:     s.spendingScore(card, profile),
		BenefitAlignment:  s.benefitScore(card, profile),
		CreditScore:       s.creditScore(card, profile),
		CostBenefit:       s.costBenefitScore(card, profile),
	}

	total := sub.IncomeEligibility*weightIncomeEligibility +
		sub.SpendingMatch*weightSpendingMatch +
		sub.BenefitAlignment*weightBenefitAlignment +
		sub.CreditScore*weightCreditScore +
		sub.CostBenefit*weightCostBenefit

	// Premium cards suit high earners; adjust after the weighted sum.
	if strings.EqualFold(card.Type, "premium") {
		if profile.Income >= premiumIncomeFloor {
			total += premiumHighIncomeAdj
		} else {
			total += premiumLowIncomeAdj
		}
	}

	final := int(math.Round(total))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return final, sub
}

// incomeScore compares annual income to the card's requirement.
// Banded: well below -> 10, slightly below -> 30, scaling from 70 at the
// requirement up to 100 at twice the requirement.
func (s *ScoringService) incomeScore(card *domain.Card, profile domain.UserProfile) float64 {
	if profile.Income <= 0 {
		return neutralScore
	}
	required := card.Eligibility.MinIncome
	if required <= 0 {
		return 100
	}
	ratio := profile.Income / required
	switch {
	case ratio < 0.8:
		return 10
	case ratio < 1.0:
		return 30
	case ratio >= 2.0:
		return 100
	default:
		// Linear from 70 at the requirement to 100 at 2x.
		return 70 + (ratio-1.0)*30
	}
}

// spendingScore rewards overlap between the card's reward table and the
// user's known spending, weighted by reward rate and spend magnitude, with
// a boost when the card rewards the user's primary category.
func (s *ScoringService) spendingScore(card *domain.Card, profile domain.UserProfile) float64 {
	if !profile.HasSpendingSignal() {
		return neutralScore
	}

	score := 0.0
	totalWeight := 0.0

	for _, category := range domain.CategoryOrder {
		rate, listed := card.RewardRates[category]
		if !listed {
			continue
		}
		amount := profile.MonthlySpending[category]
		if amount == 0 && profile.SpendingCategories[category] {
			// Category mentioned without an amount: assume a nominal
			// monthly spend so membership alone still counts.
			amount = 5000
		}
		if amount <= 0 {
			continue
		}
		categoryScore := math.Min(100, rate*20)
		weight := amount / 10000
		score += categoryScore * weight
		totalWeight += weight
	}

	if primary := profile.PrimaryCategory(); primary != "" {
		if rate := card.RewardRateFor(primary); rate > 0 {
			score += rate * 10
			totalWeight++
		}
	}

	if totalWeight == 0 {
		return neutralScore
	}
	return math.Min(100, score/totalWeight)
}

// benefitScore measures what fraction of the user's stated card-type and
// benefit preferences appear in the card's benefits and perks text.
func (s *ScoringService) benefitScore(card *domain.Card, profile domain.UserProfile) float64 {
	prefs := profile.Preferences.CardTypes
	if len(prefs) == 0 {
		return neutralScore
	}

	// The card type is part of the haystack so a stated preference like
	// "travel" matches a travel card even when its benefit text never
	// spells the word out.
	var b strings.Builder
	b.WriteString(strings.ToLower(card.Type))
	for _, text := range card.Benefits {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(text))
	}
	for _, text := range card.SpecialPerks {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(text))
	}
	haystack := b.String()

	matches := 0
	for _, pref := range prefs {
		needle := strings.ToLower(pref)
		if strings.Contains(haystack, needle) ||
			strings.Contains(haystack, strings.ReplaceAll(needle, "_", " ")) ||
			strings.Contains(haystack, strings.ReplaceAll(needle, " ", "_")) {
			matches++
		}
	}

	return math.Min(100, float64(matches)/float64(len(prefs))*100)
}

// creditScore compares the profile's representative credit score to the
// card's requirement with graduated bands.
func (s *ScoringService) creditScore(card *domain.Card, profile domain.UserProfile) float64 {
	userScore := profile.CreditScore.RepresentativeScore()
	if userScore == 0 {
		return neutralScore
	}
	required := card.MinCreditScore()
	diff := userScore - required
	switch {
	case diff >= 50:
		return 100
	case diff >= 0:
		return 80
	case diff >= -30:
		return 60
	case diff >= -50:
		return 40
	default:
		return 20
	}
}

// costBenefitScore weighs the annual fee against the reward the user's
// known spending would earn on this card.
func (s *ScoringService) costBenefitScore(card *domain.Card, profile domain.UserProfile) float64 {
	if card.AnnualFee == 0 {
		return 100
	}

	potentialReward := 0.0
	for category, rate := range card.RewardRates {
		monthly := profile.MonthlySpending[category]
		if monthly <= 0 {
			continue
		}
		annualSpend := monthly * 12
		potentialReward += annualSpend * rate / 100
	}

	netBenefit := potentialReward - card.AnnualFee
	switch {
	case netBenefit >= card.AnnualFee:
		return 100
	case netBenefit >= 0:
		return 80
	case netBenefit >= -card.AnnualFee*0.5:
		return 60
	default:
		return 30
	}
}
