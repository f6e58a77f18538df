// internal/preapproval/estimator.go
package preapproval

import (
	"strings"

	"cardmatch-workers/internal/models"
)

// cardTier is the difficulty bucket the card itself falls into; it selects
// the base score and the sensitivity of every subsequent adjustment.
type cardTier string

const (
	tierStarter  cardTier = "starter"
	tierStandard cardTier = "standard"
	tierPremium  cardTier = "premium"
)

// Calculate estimates the pre-approval probability for one (profile, card)
// pair using an additive multi-factor model. It never fails: every input
// shape produces a result, and the probability is clamped to [10, 95].
//
// The thresholds and point deltas are a hand-tuned behavioral contract
// carried over from the production scoring model; changing any of them is
// a policy decision, not a refactor.
func Calculate(user *models.UserProfile, card *models.CreditCard) models.PreapprovalResult {
	var positive, negative []string

	creditScore := NumericCreditScore(user.CreditScore)
	annualIncome := ParseAnnualIncome(user.AnnualIncome)
	annualFee := AnnualFeeAmount(card)

	cardCategory := strings.ToLower(card.Category)
	cardName := strings.ToLower(card.Name)
	creditRequirement := creditScoreRequirement(card)

	tier := tierStandard
	baseScore := 60.0

	if strings.Contains(cardCategory, "secured") ||
		strings.Contains(cardCategory, "student") ||
		strings.Contains(cardName, "student") ||
		strings.Contains(cardName, "secured") ||
		(annualFee == 0 && creditRequirement == "poor") {
		tier = tierStarter
		baseScore = 75 // starter cards have a higher base approval
		positive = append(positive, "Starter-friendly card")
	} else if strings.Contains(cardCategory, "premium") ||
		annualFee > 400 ||
		creditRequirement == "excellent" {
		tier = tierPremium
		baseScore = 45 // premium cards start lower
	}

	score := baseScore

	// Factor 1: credit score, conditioned by card tier
	switch tier {
	case tierStarter:
		// Starter cards are very lenient with credit scores
		switch {
		case creditScore >= 700:
			score += 20
			positive = append(positive, "Excellent credit for a starter card")
		case creditScore >= 650:
			score += 15
			positive = append(positive, "Good credit for this card type")
		case creditScore >= 580:
			score += 10
			positive = append(positive, "Fair credit - acceptable for starter cards")
		case creditScore >= 500:
			score += 5
			positive = append(positive, "Building credit - secured cards available")
		default:
			negative = append(negative, "Very low credit - consider secured options")
		}

	case tierPremium:
		// Premium cards are strict
		switch {
		case creditScore >= 800:
			score += 35
			positive = append(positive, "Exceptional credit score (800+)")
		case creditScore >= 750:
			score += 28
			positive = append(positive, "Excellent credit score (750-799)")
		case creditScore >= 720:
			score += 18
			positive = append(positive, "Good credit score (720-749)")
		case creditScore >= 700:
			score += 8
			positive = append(positive, "Credit score meets minimum for premium")
			negative = append(negative, "On the lower end for premium cards")
		default:
			score -= 20
			negative = append(negative, "Credit score below premium card requirements")
		}

	default:
		// Standard cards have moderate requirements
		switch {
		case creditScore >= 750:
			score += 30
			positive = append(positive, "Excellent credit score")
		case creditScore >= 700:
			score += 22
			positive = append(positive, "Good credit score")
		case creditScore >= 670:
			score += 15
			positive = append(positive, "Fair to good credit score")
		case creditScore >= 620:
			score += 8
			positive = append(positive, "Fair credit score")
			if creditRequirement == "excellent" || creditRequirement == "good" {
				score -= 10
				negative = append(negative, "Credit slightly below typical requirements")
			}
		default:
			score -= 5
			negative = append(negative, "Credit score needs improvement")
			if creditRequirement == "excellent" || creditRequirement == "good" {
				score -= 15
			}
		}
	}

	// Factor 2: income, conditioned by card tier
	switch tier {
	case tierStarter:
		// Starter cards have minimal income requirements
		if annualIncome > 0 {
			switch {
			case annualIncome >= 25000:
				score += 12
				positive = append(positive, "Income meets starter card requirements")
			case annualIncome >= 15000:
				score += 8
				positive = append(positive, "Income sufficient for starter cards")
			default:
				score += 5
			}
		} else {
			score += 8 // many starter cards don't require income proof
		}

	case tierPremium:
		// Premium cards have strict income requirements
		switch {
		case annualIncome >= 100000:
			score += 20
			positive = append(positive, "Strong income level for premium card")
			if annualFee > 500 {
				score += 2
			}
		case annualIncome >= 75000:
			score += 12
			positive = append(positive, "Good income level")
			if annualFee > 500 {
				score -= 3
				negative = append(negative, "High annual fee relative to income")
			}
		case annualIncome >= 50000:
			score += 5
			negative = append(negative, "Income on lower end for premium cards")
		default:
			score -= 10
			negative = append(negative, "Income below typical premium card requirements")
		}

	default:
		if annualIncome > 0 {
			switch {
			case annualIncome >= 75000:
				score += 15
				positive = append(positive, "Strong income level")
			case annualIncome >= 50000:
				score += 12
				positive = append(positive, "Solid income level")
			case annualIncome >= 35000:
				score += 8
				positive = append(positive, "Moderate income level")
				if annualFee > 200 {
					score -= 3
				}
			case annualIncome >= 25000:
				score += 5
				if annualFee > 100 {
					score -= 2
				}
			default:
				score += 2
			}

			// Compare against the card's stated minimum, when present
			if card.Requirements != nil && card.Requirements.Income != "" {
				minIncome := ParseIncomeRequirement(card.Requirements.Income)
				if annualIncome < minIncome {
					score -= 10
					negative = append(negative, "Income below stated minimum")
				} else {
					positive = append(positive, "Meets income requirements")
					score += 2
				}
			}
		} else {
			score += 5
		}
	}

	// Factor 3: employment status, conditioned by card tier
	if user.EmploymentStatus != "" {
		emp := strings.ToLower(user.EmploymentStatus)
		switch {
		case strings.Contains(emp, "full-time") || strings.Contains(emp, "full time"):
			if tier == tierStarter {
				score += 10
			} else {
				score += 12
			}
			positive = append(positive, "Stable full-time employment")
		case strings.Contains(emp, "part-time") || strings.Contains(emp, "part time"):
			switch tier {
			case tierStarter:
				score += 8
			case tierPremium:
				score += 3
			default:
				score += 8
			}
			if tier != tierPremium {
				positive = append(positive, "Part-time employment")
			}
		case strings.Contains(emp, "self-employed"):
			if tier == tierPremium {
				score += 8
			} else {
				score += 9
			}
			positive = append(positive, "Self-employed with income")
		case strings.Contains(emp, "unemployed"):
			// Neutral for starter cards
			if tier == tierPremium {
				score -= 15
				negative = append(negative, "No current employment")
			} else if tier == tierStandard {
				score -= 8
				negative = append(negative, "No current employment")
			}
		case strings.Contains(emp, "student"):
			if tier == tierStarter {
				score += 10
			} else {
				score += 6
			}
			if strings.Contains(cardName, "student") || strings.Contains(cardCategory, "student") {
				score += 10
				positive = append(positive, "Student card designed for you")
			}
		}
	} else {
		if tier == tierStarter {
			score += 8
		} else {
			score += 5
		}
	}

	// Factor 4: credit history and spending pattern
	if len(user.Purchases) > 0 {
		var totalSpending float64
		for _, p := range user.Purchases {
			totalSpending += p.Amount
		}
		months := float64(len(user.Purchases)) / 4
		if months < 1 {
			months = 1
		}
		avgMonthlySpending := totalSpending / months

		switch {
		case avgMonthlySpending > 2000:
			score += 10
			positive = append(positive, "Strong spending history")
		case avgMonthlySpending > 1000:
			score += 7
			positive = append(positive, "Good spending history")
		case avgMonthlySpending > 500:
			score += 5
			positive = append(positive, "Moderate spending history")
		default:
			score += 3
		}

		rewardsType := strings.ToLower(card.RewardsType)
		if strings.Contains(rewardsType, "travel") && anyCategoryContains(user.Purchases, "travel") {
			score += 3
			positive = append(positive, "Spending aligns with card rewards")
		} else if strings.Contains(rewardsType, "dining") && anyCategoryContains(user.Purchases, "restaurant") {
			score += 3
			positive = append(positive, "Spending aligns with card rewards")
		}
	} else {
		// No purchase data is not penalized
		score += 2
	}

	if score < 10 {
		score = 10
	}
	if score > 95 {
		score = 95
	}

	confidence := models.ConfidenceMedium
	switch {
	case (creditScore >= 720 && annualIncome >= 50000) || creditScore >= 780 || score >= 85:
		confidence = models.ConfidenceHigh
	case creditScore < 580 || (annualIncome > 0 && annualIncome < 20000) || score < 40:
		confidence = models.ConfidenceLow
	}

	return models.PreapprovalResult{
		Probability:    int(score + 0.5),
		Confidence:     confidence,
		Recommendation: buildRecommendation(score, creditScore, annualFee),
		Factors: models.PreapprovalFactors{
			Positive: positive,
			Negative: negative,
		},
	}
}

// creditScoreRequirement buckets the card's stated requirement label.
func creditScoreRequirement(card *models.CreditCard) string {
	var req string
	if card.Requirements != nil {
		req = strings.ToLower(card.Requirements.CreditScore)
	}

	switch {
	case strings.Contains(req, "excellent") || strings.Contains(req, "750"):
		return "excellent"
	case strings.Contains(req, "good") || strings.Contains(req, "700"):
		return "good"
	case strings.Contains(req, "fair") || strings.Contains(req, "650"):
		return "fair"
	case strings.Contains(req, "poor") || strings.Contains(req, "secured"):
		return "poor"
	}

	category := strings.ToLower(card.Category)
	if strings.Contains(category, "premium") {
		return "excellent"
	}
	if strings.Contains(category, "secured") {
		return "poor"
	}

	return "good" // default assumption
}

func anyCategoryContains(purchases []models.Purchase, substr string) bool {
	for _, p := range purchases {
		if strings.Contains(strings.ToLower(p.Category), substr) {
			return true
		}
	}
	return false
}

// buildRecommendation writes the user-facing summary for one of five score
// bands, tuned further by the numeric credit score and the annual fee.
func buildRecommendation(score float64, creditScore int, annualFee float64) string {
	switch {
	case score >= 85:
		feeNote := "Plus, there's no annual fee!"
		if annualFee > 300 {
			feeNote = "The benefits and rewards should easily offset the annual fee."
		} else if annualFee > 0 {
			feeNote = "The annual fee is reasonable for the benefits offered."
		}
		return "You're an excellent candidate for this card! Your credit profile strongly aligns with the requirements. " +
			feeNote + " You have a very high chance of approval."

	case score >= 70:
		creditNote := "Continue building your credit to improve your odds further."
		if creditScore >= 700 {
			creditNote = "Your credit profile is solid and meets most requirements."
		}
		out := "You have a strong chance of approval for this card. " + creditNote
		if annualFee > 200 {
			out += " Consider whether the annual fee fits your budget."
		}
		return out

	case score >= 55:
		creditNote := "Your profile meets many of the basic requirements."
		if creditScore < 680 {
			creditNote = "Improving your credit score would significantly boost your chances."
		}
		feeNote := "The lack of annual fee makes this a good option to try."
		if annualFee > 0 {
			feeNote = "Make sure the annual fee is worth it for your spending habits."
		}
		return "You have a fair chance of approval for this card. " + creditNote + " " + feeNote

	case score >= 35:
		creditNote := "You may want to strengthen your credit profile first."
		if creditScore < 650 {
			creditNote = "Focus on building your credit score before applying."
		}
		feeNote := "Starting with this card could help build your credit."
		if annualFee > 0 {
			feeNote = "Consider no-annual-fee cards as alternatives."
		}
		return "Approval is possible but less certain. " + creditNote + " " + feeNote

	default:
		creditNote := "Consider cards specifically designed for your credit profile."
		if creditScore < 600 {
			creditNote = "A secured card would be an excellent starting point to build credit."
		}
		return "This card may be challenging to get approved for right now. " + creditNote +
			" Focus on improving the factors listed above to boost your approval chances."
	}
}
