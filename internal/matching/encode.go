// internal/matching/encode.go
package matching

import (
	"fmt"
	"strings"

	"cardmatch-workers/internal/models"
)

// ProfileText builds the natural-language representation of a profile for
// embedding. Absent fields are omitted silently so the embedding reflects
// only present signal.
func ProfileText(user *models.UserProfile) string {
	parts := []string{
		fmt.Sprintf("Credit score: %s", user.CreditScore),
		fmt.Sprintf("Annual income: %s", user.AnnualIncome),
		fmt.Sprintf("Employment: %s", user.EmploymentStatus),
		fmt.Sprintf("Credit history length: %s", user.CreditLength),
		fmt.Sprintf("Late payments: %s", user.LatePayments),
		fmt.Sprintf("Credit goal: %s", user.CreditGoal),
		fmt.Sprintf("Citizenship: %s", user.CitizenshipStatus),
	}

	if user.HoldsCards() && len(user.CreditCards) > 0 {
		parts = append(parts, fmt.Sprintf("Current cards: %s", strings.Join(user.CreditCards, ", ")))
	}

	if len(user.Purchases) > 0 {
		seen := make(map[string]bool)
		var categories []string
		for _, p := range user.Purchases {
			if !seen[p.Category] {
				seen[p.Category] = true
				categories = append(categories, p.Category)
			}
		}
		parts = append(parts, fmt.Sprintf("Spending categories: %s", strings.Join(categories, ", ")))
	}

	return strings.Join(parts, ". ")
}

// CardText builds the natural-language representation of a card for
// embedding.
func CardText(card *models.CreditCard) string {
	parts := []string{fmt.Sprintf("Card: %s", card.Name)}

	if card.Issuer != "" {
		parts = append(parts, fmt.Sprintf("Bank: %s", card.Issuer))
	}

	if card.Category != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", card.Category))
	}

	if card.HasAnnualFee {
		if card.AnnualFeeRaw != "" {
			parts = append(parts, fmt.Sprintf("Annual fee: %s", card.AnnualFeeRaw))
		} else {
			parts = append(parts, fmt.Sprintf("Annual fee: $%g", card.AnnualFee))
		}
	}

	if card.RewardsType != "" {
		parts = append(parts, fmt.Sprintf("Rewards: %s", card.RewardsType))
	}

	if required := card.RequiredCreditScore(); required != "" {
		parts = append(parts, fmt.Sprintf("Credit score needed: %s", required))
	}

	if len(card.Benefits) > 0 {
		parts = append(parts, fmt.Sprintf("Benefits: %s", strings.Join(card.Benefits, ", ")))
	}

	return strings.Join(parts, ". ")
}
