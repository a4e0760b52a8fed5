package usecase

import (
	"fmt"
	"strings"

	"github.com/cardcompass/backend/internal/domain"
)

const maxReasons = 3

// highRewardThreshold is the headline reward rate (percent) above which a
// card earns a "high reward rate" justification.
const highRewardThreshold = 4.0

// GenerateReasons produces up to three short, deterministic justifications
// for recommending a card, in a fixed priority order. It never consults the
// external dialogue service, so every ranking stays explainable when that
// service is down. Returns a single generic reason when nothing specific
// applies.
func GenerateReasons(card *domain.Card, profile domain.UserProfile) []string {
	var reasons []string

	// 1. Income eligibility, phrased by margin.
	if profile.Income > 0 && card.Eligibility.MinIncome > 0 && profile.Income >= card.Eligibility.MinIncome {
		if profile.Income >= card.Eligibility.MinIncome*2 {
			reasons = append(reasons, fmt.Sprintf("Your income comfortably meets the requirement of Rs. %.0f", card.Eligibility.MinIncome))
		} else {
			reasons = append(reasons, fmt.Sprintf("Meets the income requirement of Rs. %.0f", card.Eligibility.MinIncome))
		}
	}

	// 2. Zero annual fee, or a fee within the user's stated budget.
	if card.AnnualFee == 0 {
		reasons = append(reasons, "No annual fee - great value for money")
	} else if budget := profile.Preferences.MaxAnnualFee; budget != nil && card.AnnualFee <= *budget {
		reasons = append(reasons, fmt.Sprintf("Annual fee (Rs. %.0f) within your budget", card.AnnualFee))
	}

	// 3. High headline reward rate.
	if len(reasons) < maxReasons && card.RewardRate >= highRewardThreshold {
		reasons = append(reasons, fmt.Sprintf("High %s rate of %.1f%% on eligible spends", card.RewardType, card.RewardRate))
	}

	// 4. Match on the user's primary spending category.
	if len(reasons) < maxReasons {
		if primary := profile.PrimaryCategory(); primary != "" {
			if rate, ok := card.RewardRates[primary]; ok && rate > 2 {
				reasons = append(reasons, fmt.Sprintf("Excellent rewards on %s spending", primary))
			}
		}
	}

	// 5. Lounge access perk.
	if len(reasons) < maxReasons && hasLoungePerk(card) {
		reasons = append(reasons, "Airport lounge access included")
	}

	// 6. High catalog rating.
	if len(reasons) < maxReasons && card.Rating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("Highly rated card (%.1f/5)", card.Rating))
	}

	if len(reasons) == 0 {
		return []string{"Good overall match for your profile"}
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

func hasLoungePerk(card *domain.Card) bool {
	for _, perk := range card.SpecialPerks {
		if strings.Contains(strings.ToLower(perk), "lounge") {
			return true
		}
	}
	return false
}
