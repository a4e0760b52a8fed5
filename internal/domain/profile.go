package domain

// CreditBucket is a coarse self-reported credit score band.
type CreditBucket string

const (
	CreditExcellent CreditBucket = "excellent"
	CreditGood      CreditBucket = "good"
	CreditFair      CreditBucket = "fair"
	CreditPoor      CreditBucket = "poor"
	CreditUnknown   CreditBucket = "unknown"
)

// RepresentativeScore maps the bucket to a numeric credit score comparable
// against card requirements. Unknown yields zero; callers treat that as
// "no signal".
func (b CreditBucket) RepresentativeScore() int {
	switch b {
	case CreditExcellent:
		return 800
	case CreditGood:
		return 720
	case CreditFair:
		return 650
	case CreditPoor:
		return 550
	default:
		return 0
	}
}

// Preferences holds explicit user preferences about the product itself.
type Preferences struct {
	// CardTypes is append-only and duplicate-free, in mention order.
	CardTypes    []string `json:"cardTypes,omitempty"`
	MaxAnnualFee *float64 `json:"maxAnnualFee,omitempty"`
}

// UserProfile accumulates structured facts extracted from a conversation.
// Information content only ever grows: the extractor adds facts and never
// deletes or overwrites one (income and age are first-wins).
type UserProfile struct {
	Income      float64      `json:"income,omitempty"` // annual, 0 = unknown
	Age         int          `json:"age,omitempty"`    // 0 = unknown
	CreditScore CreditBucket `json:"creditScore,omitempty"`

	// SpendingCategories is the set of categories the user has mentioned.
	// Membership only; amounts live in MonthlySpending when supplied.
	SpendingCategories map[string]bool `json:"spendingCategories,omitempty"`

	// MonthlySpending maps category -> monthly amount, supplied via the
	// explicit simulation path rather than extracted from text.
	MonthlySpending map[string]float64 `json:"monthlySpending,omitempty"`

	Preferences Preferences `json:"preferences"`
}

// NewUserProfile returns an empty profile with initialized collections.
func NewUserProfile() UserProfile {
	return UserProfile{
		CreditScore:        CreditUnknown,
		SpendingCategories: make(map[string]bool),
		MonthlySpending:    make(map[string]float64),
	}
}

// Clone returns a deep copy. The extractor works on copies so the session
// owns the only mutable profile.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.SpendingCategories = make(map[string]bool, len(p.SpendingCategories))
	for k, v := range p.SpendingCategories {
		out.SpendingCategories[k] = v
	}
	out.MonthlySpending = make(map[string]float64, len(p.MonthlySpending))
	for k, v := range p.MonthlySpending {
		out.MonthlySpending[k] = v
	}
	out.Preferences.CardTypes = append([]string(nil), p.Preferences.CardTypes...)
	if p.Preferences.MaxAnnualFee != nil {
		fee := *p.Preferences.MaxAnnualFee
		out.Preferences.MaxAnnualFee = &fee
	}
	return out
}

// PrimaryCategory returns the user's most-emphasized spending category:
// the category with the highest known monthly spend, or the first card-type
// preference that is also a spending category, or any mentioned category.
// Empty string when there is no signal.
func (p UserProfile) PrimaryCategory() string {
	best := ""
	bestAmount := 0.0
	for category, amount := range p.MonthlySpending {
		if amount > bestAmount {
			best = category
			bestAmount = amount
		}
	}
	if best != "" {
		return best
	}
	for _, t := range p.Preferences.CardTypes {
		if p.SpendingCategories[t] {
			return t
		}
	}
	for _, category := range CategoryOrder {
		if p.SpendingCategories[category] {
			return category
		}
	}
	return ""
}

// CategoryOrder fixes iteration order over the category vocabulary so that
// profile-derived results are deterministic.
var CategoryOrder = []string{
	CategoryFuel,
	CategoryTravel,
	CategoryDining,
	CategoryGrocery,
	CategoryShopping,
	CategoryEntertainment,
	CategoryOnline,
}

// HasSpendingSignal reports whether any category membership or spend amount
// is known.
func (p UserProfile) HasSpendingSignal() bool {
	return len(p.SpendingCategories) > 0 || len(p.MonthlySpending) > 0
}
