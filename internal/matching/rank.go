// internal/matching/rank.go
package matching

import (
	"strings"

	"cardmatch-workers/internal/models"
)

// DetermineUserRank classifies a profile into a tier. Total and
// deterministic: every profile maps to exactly one tier. Rule order is
// load-bearing: the tenderfoot rule is evaluated before the mobster rule so
// that an adversarial profile matching both resolves to tenderfoot.
func DetermineUserRank(user *models.UserProfile) models.UserTier {
	creditScore := strings.ToLower(user.CreditScore)
	creditLength := user.CreditLength

	// Tenderfoot: no credit history, or building credit
	if strings.Contains(creditScore, "no credit") ||
		strings.Contains(creditScore, "no-credit") ||
		strings.Contains(creditScore, "never had credit") ||
		creditLength == "never" ||
		creditLength == "<1" ||
		!user.HoldsCards() ||
		strings.Contains(creditScore, "bad") ||
		user.CreditGoal == "building" {
		return models.TierTenderfoot
	}

	// Mobster: excellent credit with long history
	if strings.Contains(creditScore, "excellent") &&
		(creditLength == "5-10" || creditLength == "10+") &&
		user.HoldsCards() &&
		len(user.CreditCards) > 0 {
		return models.TierMobster
	}

	// Journeyman: everyone else, building up from basic cards
	return models.TierJourneyman
}
