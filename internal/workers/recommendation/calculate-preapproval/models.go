// internal/workers/recommendation/calculate-preapproval/models.go
package calculatepreapproval

import "cardmatch-workers/internal/models"

type Input struct {
	UserID      string              `json:"userId"`
	UserProfile *models.UserProfile `json:"userProfile"`
	Card        *models.CreditCard  `json:"card"`
	CardID      string              `json:"cardId"`
}

type Output struct {
	CardID              string                    `json:"cardId"`
	ApprovalProbability int                       `json:"approvalProbability"`
	Confidence          string                    `json:"confidence"`
	Recommendation      string                    `json:"recommendation"`
	Factors             models.PreapprovalFactors `json:"factors"`
}
