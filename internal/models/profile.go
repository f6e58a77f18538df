// internal/models/profile.go
package models

import "strings"

// UserProfile is the survey-shaped credit profile of a user. Free-text
// fields (credit score bucket, income range, employment) are stored as the
// labels the onboarding form produced; comparisons against catalog
// requirement strings are case-insensitive substring checks by design, to
// tolerate label drift between the form and the catalog.
type UserProfile struct {
	UserID            string     `json:"userId,omitempty"`
	CreditScore       string     `json:"creditScore"`
	AnnualIncome      string     `json:"annualIncome"`
	EmploymentStatus  string     `json:"employmentStatus"`
	HasCreditCards    string     `json:"hasCreditCards"` // "yes" / "no"
	CreditCards       []string   `json:"creditCards"`
	CreditLength      string     `json:"creditLength"` // never, <1, 1-2, 2-5, 5-10, 10+
	LatePayments      string     `json:"latePayments"` // "yes" / "no"
	CreditGoal        string     `json:"creditGoal"`   // rewards, building, travel, transfer
	CitizenshipStatus string     `json:"citizenshipStatus"`
	Purchases         []Purchase `json:"purchases,omitempty"`
}

// Purchase is one simulated transaction from the linked bank account.
type Purchase struct {
	MerchantName string  `json:"merchant_name"`
	Category     string  `json:"category"`
	PurchaseDate string  `json:"purchase_date"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	Description  string  `json:"description"`
}

// HoldsCards reports whether the user currently holds any credit cards.
func (u *UserProfile) HoldsCards() bool {
	return u.HasCreditCards == "yes"
}

// UserTier is the coarse creditworthiness bucket assigned to a user,
// used to pre-filter the card catalog.
type UserTier string

const (
	TierTenderfoot UserTier = "tenderfoot"
	TierJourneyman UserTier = "journeyman"
	TierMobster    UserTier = "mobster"
)

// CreditScoreLevel is the ordinal scale both user labels and catalog
// requirement labels are normalized onto before comparison.
type CreditScoreLevel int

const (
	ScoreNoCredit  CreditScoreLevel = 0
	ScoreBad       CreditScoreLevel = 1
	ScoreFair      CreditScoreLevel = 2
	ScoreGood      CreditScoreLevel = 3
	ScoreExcellent CreditScoreLevel = 4
)

// scoreKeywords maps label keywords onto the ordinal scale. Order matters:
// later entries win when a label contains several keywords.
var scoreKeywords = []struct {
	keyword string
	level   CreditScoreLevel
}{
	{"no credit", ScoreNoCredit},
	{"bad", ScoreBad},
	{"poor", ScoreBad},
	{"fair", ScoreFair},
	{"good", ScoreGood},
	{"excellent", ScoreExcellent},
}

// ParseCreditScoreLevel resolves a free-text credit score label to the
// ordinal scale. Unrecognized labels resolve to ScoreNoCredit (level 0):
// an unrecognized requirement label therefore acts as no constraint,
// because both sides default equal.
func ParseCreditScoreLevel(label string) CreditScoreLevel {
	lower := strings.ToLower(label)
	level := ScoreNoCredit
	for _, entry := range scoreKeywords {
		if strings.Contains(lower, entry.keyword) {
			level = entry.level
		}
	}
	return level
}
