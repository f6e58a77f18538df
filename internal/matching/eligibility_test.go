// internal/matching/eligibility_test.go
package matching

import (
	"testing"

	"cardmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func cardWithRequirements(reqs *models.EligibilityRequirements) models.CreditCard {
	return models.CreditCard{Name: "Test Card", Requirements: reqs}
}

func TestMeetsHardRequirements(t *testing.T) {
	tests := []struct {
		name     string
		user     models.UserProfile
		reqs     *models.EligibilityRequirements
		eligible bool
	}{
		{
			name:     "no requirements is always eligible",
			user:     models.UserProfile{},
			reqs:     nil,
			eligible: true,
		},
		{
			name:     "student card requires student",
			user:     models.UserProfile{EmploymentStatus: "Full-time"},
			reqs:     &models.EligibilityRequirements{EmploymentStatus: "student"},
			eligible: false,
		},
		{
			name:     "student card accepts student",
			user:     models.UserProfile{EmploymentStatus: "Student, part-time"},
			reqs:     &models.EligibilityRequirements{EmploymentStatus: "student"},
			eligible: true,
		},
		{
			name:     "citizen requirement rejects visa holder",
			user:     models.UserProfile{CitizenshipStatus: "Student visa"},
			reqs:     &models.EligibilityRequirements{Citizenship: "US citizen"},
			eligible: false,
		},
		{
			name:     "citizen-only requirement rejects resident",
			user:     models.UserProfile{CitizenshipStatus: "Permanent resident"},
			reqs:     &models.EligibilityRequirements{Citizenship: "US citizen"},
			eligible: false,
		},
		{
			name:     "resident requirement accepts citizen",
			user:     models.UserProfile{CitizenshipStatus: "US citizen"},
			reqs:     &models.EligibilityRequirements{Citizenship: "US resident"},
			eligible: true,
		},
		{
			name:     "resident requirement accepts resident",
			user:     models.UserProfile{CitizenshipStatus: "Permanent resident"},
			reqs:     &models.EligibilityRequirements{Citizenship: "citizen or resident"},
			eligible: true,
		},
		{
			name:     "resident requirement rejects visa holder",
			user:     models.UserProfile{CitizenshipStatus: "Work visa"},
			reqs:     &models.EligibilityRequirements{Citizenship: "US resident"},
			eligible: false,
		},
		{
			name:     "credit score below requirement",
			user:     models.UserProfile{CreditScore: "fair"},
			reqs:     &models.EligibilityRequirements{CreditScore: "good"},
			eligible: false,
		},
		{
			name:     "credit score meets requirement exactly",
			user:     models.UserProfile{CreditScore: "Good (670-739)"},
			reqs:     &models.EligibilityRequirements{CreditScore: "good"},
			eligible: true,
		},
		{
			name:     "credit score exceeds requirement",
			user:     models.UserProfile{CreditScore: "excellent"},
			reqs:     &models.EligibilityRequirements{CreditScore: "fair"},
			eligible: true,
		},
		{
			name:     "unrecognized requirement label is permissive",
			user:     models.UserProfile{CreditScore: "no credit"},
			reqs:     &models.EligibilityRequirements{CreditScore: "decent-ish"},
			eligible: true,
		},
		{
			name: "all requirements must hold",
			user: models.UserProfile{
				CreditScore:       "excellent",
				EmploymentStatus:  "Full-time",
				CitizenshipStatus: "US citizen",
			},
			reqs: &models.EligibilityRequirements{
				CreditScore:      "good",
				EmploymentStatus: "student",
				Citizenship:      "US citizen",
			},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := cardWithRequirements(tt.reqs)
			assert.Equal(t, tt.eligible, MeetsHardRequirements(&tt.user, &card))
		})
	}
}
