// internal/matching/tierfilter.go
package matching

import (
	"strings"

	"cardmatch-workers/internal/models"
)

// FilterCardsByTier narrows the catalog to cards suitable for a tier.
// tenderfoot gets secured/student/credit-building cards, journeyman gets
// low-fee cashback and rewards cards, mobster gets premium and travel
// cards. An unknown tier passes the catalog through unchanged.
func FilterCardsByTier(cards []models.CreditCard, tier models.UserTier) []models.CreditCard {
	var out []models.CreditCard

	switch tier {
	case models.TierTenderfoot:
		for _, card := range cards {
			category := strings.ToLower(card.Category)
			name := strings.ToLower(card.Name)
			requiredScore := strings.ToLower(card.RequiredCreditScore())

			if strings.Contains(category, "secured") ||
				strings.Contains(category, "student") ||
				strings.Contains(category, "bad") ||
				strings.Contains(category, "no-credit") ||
				strings.ToLower(card.Type) == "student" ||
				strings.Contains(name, "secured") ||
				strings.Contains(name, "student") ||
				strings.Contains(requiredScore, "fair") ||
				strings.Contains(requiredScore, "bad") ||
				strings.Contains(requiredScore, "poor") ||
				strings.Contains(requiredScore, "no credit") {
				out = append(out, card)
			}
		}

	case models.TierJourneyman:
		for _, card := range cards {
			category := strings.ToLower(card.Category)
			rewards := strings.ToLower(card.RewardsType)

			if !strings.Contains(category, "secured") &&
				!strings.Contains(category, "student") &&
				!strings.Contains(category, "premium") &&
				strings.ToLower(card.Type) != "student" &&
				card.AnnualFee < 100 &&
				(strings.Contains(rewards, "cashback") ||
					strings.Contains(rewards, "rewards") ||
					strings.Contains(category, "cashback") ||
					strings.Contains(category, "cash-back") ||
					strings.Contains(category, "good-credit") ||
					strings.Contains(category, "rewards")) {
				out = append(out, card)
			}
		}

	case models.TierMobster:
		for _, card := range cards {
			category := strings.ToLower(card.Category)
			name := strings.ToLower(card.Name)

			if strings.Contains(category, "premium") ||
				strings.Contains(category, "travel") ||
				strings.Contains(category, "hotel") ||
				card.AnnualFee >= 95 ||
				strings.Contains(name, "platinum") ||
				strings.Contains(name, "reserve") ||
				strings.Contains(name, "prestige") ||
				strings.Contains(name, "gold") {
				out = append(out, card)
			}
		}

	default:
		return cards
	}

	return out
}
