// internal/matching/eligibility.go
package matching

import (
	"strings"

	"cardmatch-workers/internal/models"
)

// MeetsHardRequirements is the eligibility gate applied before ranking.
// It returns true when the user is not excluded by any of the card's
// stated requirements; an absent requirement is always permissive.
func MeetsHardRequirements(user *models.UserProfile, card *models.CreditCard) bool {
	requirements := card.Requirements
	if requirements == nil {
		return true
	}

	// Student requirement
	if requirements.EmploymentStatus != "" {
		reqStatus := strings.ToLower(requirements.EmploymentStatus)
		userStatus := strings.ToLower(user.EmploymentStatus)

		if strings.Contains(reqStatus, "student") && !strings.Contains(userStatus, "student") {
			return false
		}
	}

	// Citizenship requirement
	if requirements.Citizenship != "" {
		reqCitizenship := strings.ToLower(requirements.Citizenship)
		userCitizenship := strings.ToLower(user.CitizenshipStatus)

		isUserCitizen := strings.Contains(userCitizenship, "citizen")
		isUserResident := strings.Contains(userCitizenship, "resident") || isUserCitizen

		// Card requires a citizen (and not merely a resident)
		if strings.Contains(reqCitizenship, "citizen") &&
			!strings.Contains(reqCitizenship, "resident") &&
			!isUserCitizen {
			return false
		}

		// Card requires a resident, which includes citizens
		if strings.Contains(reqCitizenship, "resident") && !isUserResident {
			return false
		}
	}

	// Credit score requirement: both labels resolve onto the same ordinal
	// scale; the user must meet or exceed the requirement.
	if requirements.CreditScore != "" {
		userLevel := models.ParseCreditScoreLevel(user.CreditScore)
		reqLevel := models.ParseCreditScoreLevel(requirements.CreditScore)

		if userLevel < reqLevel {
			return false
		}
	}

	return true
}
