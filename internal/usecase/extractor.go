package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardcompass/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// Matches a leading decimal number with optional thousands grouping,
	// e.g. "5", "5.5", "3,50,000". Unit words are matched separately so
	// "5 lakh" and "5lakh" both work.
	incomeNumberRegex = regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)`)

	// Matches a two-digit age immediately followed by a year word,
	// e.g. "28 years", "32yr".
	ageRegex = regexp.MustCompile(`(?i)(\d{2})\s*(?:years|year|yr)`)

	// Matches the abbreviated thousand unit only when attached to a
	// number, e.g. "50k", "50 k".
	kUnitRegex = regexp.MustCompile(`\d\s*k\b`)
)

// incomeUnits maps unit words to their multipliers. When several unit words
// appear in one utterance every matching multiplier is applied in sequence;
// "5 lakh 50 thousand" therefore compounds rather than summing. That mirrors
// how users actually phrase a single figure ("5 lakhs per annum") and keeps
// extraction order-independent.
var incomeUnits = []struct {
	word       string
	multiplier float64
}{
	{"lakh", 100000},
	{"crore", 10000000},
	{"thousand", 1000},
	{"k", 1000},
}

// spendingKeywords maps each spending category to the words that signal it.
// Matching is case-insensitive substring search, not tokenized, so a keyword
// inside a longer word also matches ("meal" in "oatmeal"). Acceptable
// over-match for a bounded vocabulary.
var spendingKeywords = map[string][]string{
	domain.CategoryDining:        {"dining", "restaurant", "food", "eat", "meal"},
	domain.CategoryShopping:      {"shopping", "shop", "buy", "purchase", "retail"},
	domain.CategoryTravel:        {"travel", "flight", "hotel", "vacation", "trip"},
	domain.CategoryFuel:          {"fuel", "petrol", "gas", "diesel"},
	domain.CategoryGrocery:       {"grocery", "groceries", "supermarket"},
	domain.CategoryEntertainment: {"entertainment", "movie", "cinema", "games"},
}

// cardTypeVocabulary is the fixed set of recognized card-type preferences,
// checked in this order so preference lists are deterministic.
var cardTypeVocabulary = []string{"cashback", "rewards", "travel", "fuel", "shopping", "premium"}

// creditBuckets is checked in this order; "excellent" before "good" etc. so
// the strongest stated band wins within one utterance.
var creditBuckets = []domain.CreditBucket{
	domain.CreditExcellent,
	domain.CreditGood,
	domain.CreditFair,
	domain.CreditPoor,
}

// ExtractProfile folds one user utterance into the accumulated profile and
// returns the updated copy. It never mutates the input and never panics,
// whatever the utterance contains. Income and age are first-wins: once set,
// later utterances are scanned but cannot overwrite them.
func ExtractProfile(profile domain.UserProfile, utterance string) domain.UserProfile {
	out := profile.Clone()
	if out.SpendingCategories == nil {
		out.SpendingCategories = make(map[string]bool)
	}
	if out.MonthlySpending == nil {
		out.MonthlySpending = make(map[string]float64)
	}
	if out.CreditScore == "" {
		out.CreditScore = domain.CreditUnknown
	}

	lower := strings.ToLower(utterance)

	extractIncome(&out, utterance, lower)
	extractAge(&out, utterance)
	extractSpendingCategories(&out, lower)
	extractCardTypes(&out, lower)
	extractCreditBucket(&out, lower)

	return out
}

func extractIncome(p *domain.UserProfile, utterance, lower string) {
	if p.Income > 0 {
		return
	}
	match := incomeNumberRegex.FindStringSubmatch(utterance)
	if match == nil {
		return
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil || value <= 0 {
		return
	}
	for _, unit := range incomeUnits {
		if containsUnit(lower, unit.word) {
			value *= unit.multiplier
		}
	}
	p.Income = value
}

// containsUnit does a substring check, except for the single-letter "k"
// which must directly follow the number ("50k") or stand alone to avoid
// matching every word containing the letter.
func containsUnit(lower, word string) bool {
	if word != "k" {
		return strings.Contains(lower, word)
	}
	return kUnitRegex.MatchString(lower)
}

func extractAge(p *domain.UserProfile, utterance string) {
	if p.Age > 0 {
		return
	}
	match := ageRegex.FindStringSubmatch(utterance)
	if match == nil {
		return
	}
	age, err := strconv.Atoi(match[1])
	if err != nil {
		return
	}
	p.Age = age
}

func extractSpendingCategories(p *domain.UserProfile, lower string) {
	for category, keywords := range spendingKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				p.SpendingCategories[category] = true
				break
			}
		}
	}
}

func extractCardTypes(p *domain.UserProfile, lower string) {
	for _, cardType := range cardTypeVocabulary {
		if !strings.Contains(lower, cardType) {
			continue
		}
		exists := false
		for _, existing := range p.Preferences.CardTypes {
			if existing == cardType {
				exists = true
				break
			}
		}
		if !exists {
			p.Preferences.CardTypes = append(p.Preferences.CardTypes, cardType)
		}
	}
}

func extractCreditBucket(p *domain.UserProfile, lower string) {
	if p.CreditScore != domain.CreditUnknown {
		return
	}
	for _, bucket := range creditBuckets {
		if strings.Contains(lower, string(bucket)) {
			p.CreditScore = bucket
			return
		}
	}
}
