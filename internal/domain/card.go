package domain

import "strings"

// Spending category vocabulary. Cards and profiles share these names; the
// extractor only ever produces values from this set.
const (
	CategoryFuel          = "fuel"
	CategoryTravel        = "travel"
	CategoryDining        = "dining"
	CategoryGrocery       = "grocery"
	CategoryShopping      = "shopping"
	CategoryEntertainment = "entertainment"
	CategoryOnline        = "online"
)

// Wildcard reward keys. A card that rewards every category uses one of these
// instead of listing each category explicitly.
const (
	RewardKeyAll     = "all"
	RewardKeyDefault = "default"
)

// PointValueFactor converts a reward-point multiplier into a percentage
// cashback equivalent (1x points ≈ 0.25% back).
const PointValueFactor = 0.25

// Default eligibility bounds used when a card does not specify its own.
const (
	DefaultMinAge         = 18
	DefaultMaxAge         = 65
	DefaultMinCreditScore = 650
)

// Eligibility holds the numeric issuance requirements of a card.
type Eligibility struct {
	MinIncome      float64 `json:"minIncome"` // annual
	MinCreditScore int     `json:"minCreditScore"`
	MinAge         int     `json:"minAge"`
	MaxAge         int     `json:"maxAge"`
}

// Card represents one financial product in the catalog. Cards are read-only
// to the recommendation core; only catalog administration mutates them.
type Card struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Issuer       string             `json:"issuer"`
	Type         string             `json:"type"` // cashback, rewards, travel, fuel, shopping, premium
	AnnualFee    float64            `json:"annualFee"`
	JoiningFee   float64            `json:"joiningFee"`
	Eligibility  Eligibility        `json:"eligibility"`
	RewardRates  map[string]float64 `json:"rewardRates"` // category -> percentage cashback equivalent
	RewardType   string             `json:"rewardType"`  // "cashback" or "points"
	RewardRate   float64            `json:"rewardRate"`  // headline rate for display
	Benefits     []string           `json:"benefits"`
	SpecialPerks []string           `json:"specialPerks"`
	Rating       float64            `json:"rating"` // 1-5
	ImageURL     string             `json:"imageUrl,omitempty"`
	ApplyLink    string             `json:"applyLink,omitempty"`
	Active       bool               `json:"isActive"`
}

// RewardRateFor resolves the reward rate for a spending category.
// Lookup order: exact category, then the "all" wildcard, then "default".
// Categories the card does not reward at all yield zero.
func (c *Card) RewardRateFor(category string) float64 {
	if rate, ok := c.RewardRates[category]; ok {
		return rate
	}
	if rate, ok := c.RewardRates[RewardKeyAll]; ok {
		return rate
	}
	if rate, ok := c.RewardRates[RewardKeyDefault]; ok {
		return rate
	}
	return 0
}

// MinCreditScore returns the card's credit score requirement, falling back to
// the catalog default when unset.
func (c *Card) MinCreditScore() int {
	if c.Eligibility.MinCreditScore > 0 {
		return c.Eligibility.MinCreditScore
	}
	return DefaultMinCreditScore
}

// AgeBounds returns the card's age window, substituting defaults for
// unset bounds.
func (c *Card) AgeBounds() (int, int) {
	minAge := c.Eligibility.MinAge
	if minAge <= 0 {
		minAge = DefaultMinAge
	}
	maxAge := c.Eligibility.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return minAge, maxAge
}

// CardFilter narrows catalog listings.
type CardFilter struct {
	Type         string
	Issuer       string
	MaxAnnualFee *float64
	MaxMinIncome *float64
}

// Matches reports whether the card satisfies every set filter field.
func (f CardFilter) Matches(c *Card) bool {
	if f.Type != "" && !strings.EqualFold(c.Type, f.Type) {
		return false
	}
	if f.Issuer != "" && !strings.EqualFold(c.Issuer, f.Issuer) {
		return false
	}
	if f.MaxAnnualFee != nil && c.AnnualFee > *f.MaxAnnualFee {
		return false
	}
	if f.MaxMinIncome != nil && c.Eligibility.MinIncome > *f.MaxMinIncome {
		return false
	}
	return true
}
