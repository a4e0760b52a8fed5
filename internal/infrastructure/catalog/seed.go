package catalog

import "github.com/cardcompass/backend/internal/domain"

// pts converts a reward-point multiplier to its percentage cashback
// equivalent.
func pts(multiplier float64) float64 {
	return multiplier * domain.PointValueFactor
}

// SeedCards is the built-in catalog of Indian credit cards used when no
// external catalog source is configured. Point-multiplier cards are stored
// pre-normalized to percentage equivalents.
func SeedCards() []*domain.Card {
	return []*domain.Card{
		{
			ID:         "hdfc-regalia",
			Name:       "HDFC Bank Regalia Credit Card",
			Issuer:     "HDFC Bank",
			Type:       "premium",
			AnnualFee:  2500,
			JoiningFee: 2500,
			RewardType: "points",
			RewardRate: 4,
			Eligibility: domain.Eligibility{
				MinIncome:      300000,
				MinCreditScore: 750,
				MinAge:         21,
				MaxAge:         60,
			},
			RewardRates: map[string]float64{
				domain.CategoryDining: pts(2),
				domain.CategoryTravel: pts(2),
				domain.RewardKeyAll:   pts(1),
			},
			Benefits: []string{
				"4 reward points per Rs. 150 spent",
				"Airport lounge access",
				"Complimentary movie tickets",
				"Golf privileges",
			},
			SpecialPerks: []string{"Airport lounge access", "Movie ticket discounts", "Golf privileges"},
			Rating:       4.2,
			ApplyLink:    "https://www.hdfcbank.com/personal/pay/cards/credit-cards/regalia",
			Active:       true,
		},
		{
			ID:         "sbi-simplyclick",
			Name:       "SBI SimplyCLICK Credit Card",
			Issuer:     "State Bank of India",
			Type:       "cashback",
			AnnualFee:  499,
			JoiningFee: 499,
			RewardType: "cashback",
			RewardRate: 5,
			Eligibility: domain.Eligibility{
				MinIncome:      200000,
				MinCreditScore: 700,
			},
			RewardRates: map[string]float64{
				domain.CategoryOnline: 5,
				domain.CategoryFuel:   1,
				domain.RewardKeyAll:   1,
			},
			Benefits: []string{
				"5% cashback on online shopping",
				"1% cashback on other purchases",
				"Fuel surcharge waiver",
			},
			SpecialPerks: []string{"Online shopping rewards", "Fuel surcharge waiver"},
			Rating:       4.0,
			ApplyLink:    "https://www.sbi.co.in/web/personal-banking/cards/credit-cards/simplyclick",
			Active:       true,
		},
		{
			ID:         "icici-amazon-pay",
			Name:       "ICICI Bank Amazon Pay Credit Card",
			Issuer:     "ICICI Bank",
			Type:       "cashback",
			AnnualFee:  0,
			JoiningFee: 0,
			RewardType: "cashback",
			RewardRate: 5,
			Eligibility: domain.Eligibility{
				MinIncome:      300000,
				MinCreditScore: 720,
			},
			RewardRates: map[string]float64{
				domain.CategoryOnline:   5,
				domain.CategoryShopping: 2,
				domain.RewardKeyAll:     1,
			},
			Benefits: []string{
				"5% cashback on Amazon purchases",
				"2% cashback on bill payments",
				"1% cashback on other purchases",
			},
			SpecialPerks: []string{"Amazon Prime benefits", "No annual fee"},
			Rating:       4.3,
			ApplyLink:    "https://www.icicibank.com/personal-banking/cards/credit-card/amazon-pay",
			Active:       true,
		},
		{
			ID:         "axis-ace",
			Name:       "Axis Bank Ace Credit Card",
			Issuer:     "Axis Bank",
			Type:       "cashback",
			AnnualFee:  499,
			JoiningFee: 499,
			RewardType: "cashback",
			RewardRate: 5,
			Eligibility: domain.Eligibility{
				MinIncome:      300000,
				MinCreditScore: 700,
			},
			RewardRates: map[string]float64{
				domain.CategoryDining: 2,
				domain.CategoryOnline: 4,
				domain.RewardKeyAll:   1.5,
			},
			Benefits: []string{
				"5% cashback on bill payments",
				"4% cashback on Google Pay transactions",
				"2% cashback on Swiggy and Zomato",
			},
			SpecialPerks: []string{"Google Pay cashback", "Food delivery rewards"},
			Rating:       4.1,
			ApplyLink:    "https://www.axisbank.com/retail/cards/credit-card/ace-credit-card",
			Active:       true,
		},
		{
			ID:         "hdfc-millennia",
			Name:       "HDFC Bank Millennia Credit Card",
			Issuer:     "HDFC Bank",
			Type:       "shopping",
			AnnualFee:  1000,
			JoiningFee: 1000,
			RewardType: "cashback",
			RewardRate: 5,
			Eligibility: domain.Eligibility{
				MinIncome:      300000,
				MinCreditScore: 720,
			},
			RewardRates: map[string]float64{
				domain.CategoryOnline:   5,
				domain.CategoryShopping: 2.5,
				domain.RewardKeyAll:     1,
			},
			Benefits: []string{
				"5% cashback on online shopping",
				"2.5% cashback on offline spends",
				"1% cashback on other purchases",
			},
			SpecialPerks: []string{"Online shopping focus", "No forex markup"},
			Rating:       4.0,
			ApplyLink:    "https://www.hdfcbank.com/personal/pay/cards/credit-cards/millennia",
			Active:       true,
		},
		{
			ID:         "indusind-tiger",
			Name:       "IndusInd Bank Tiger Credit Card",
			Issuer:     "IndusInd Bank",
			Type:       "fuel",
			AnnualFee:  250,
			JoiningFee: 250,
			RewardType: "cashback",
			RewardRate: 3,
			Eligibility: domain.Eligibility{
				MinIncome:      200000,
				MinCreditScore: 650,
			},
			RewardRates: map[string]float64{
				domain.CategoryFuel:    3,
				domain.CategoryGrocery: 1.5,
				domain.RewardKeyAll:    1,
			},
			Benefits: []string{
				"3% cashback on fuel spends",
				"Fuel surcharge waiver at all pumps",
				"1% cashback on other purchases",
			},
			SpecialPerks: []string{"Fuel surcharge waiver"},
			Rating:       3.8,
			Active:       true,
		},
		{
			ID:         "hdfc-regalia-gold",
			Name:       "HDFC Regalia Gold",
			Issuer:     "HDFC Bank",
			Type:       "travel",
			AnnualFee:  2500,
			JoiningFee: 2500,
			RewardType: "points",
			RewardRate: 4,
			Eligibility: domain.Eligibility{
				MinIncome:      300000,
				MinCreditScore: 750,
				MinAge:         21,
				MaxAge:         60,
			},
			RewardRates: map[string]float64{
				domain.CategoryDining:   4,
				domain.CategoryTravel:   4,
				domain.CategoryShopping: 2,
				domain.CategoryFuel:     1,
				domain.RewardKeyDefault: 1,
			},
			Benefits: []string{
				"Complimentary airport lounge access",
				"Travel insurance up to Rs. 50 lakhs",
				"Fuel surcharge waiver",
				"Reward points never expire",
			},
			SpecialPerks: []string{"Domestic lounge access 8 visits/year", "Travel insurance"},
			Rating:       4.2,
			Active:       true,
		},
		{
			ID:         "amex-platinum-travel",
			Name:       "American Express Platinum Travel Credit Card",
			Issuer:     "American Express",
			Type:       "premium",
			AnnualFee:  5000,
			JoiningFee: 3500,
			RewardType: "points",
			RewardRate: 2,
			Eligibility: domain.Eligibility{
				MinIncome:      600000,
				MinCreditScore: 750,
				MinAge:         21,
			},
			RewardRates: map[string]float64{
				domain.CategoryTravel: pts(4),
				domain.CategoryDining: pts(2),
				domain.RewardKeyAll:   pts(1),
			},
			Benefits: []string{
				"Travel vouchers worth Rs. 7,700 on milestone spends",
				"Airport lounge access",
				"Membership rewards points",
			},
			SpecialPerks: []string{"Airport lounge access", "Milestone travel vouchers"},
			Rating:       4.4,
			Active:       true,
		},
	}
}
