// internal/workers/recommendation/match-user-cards/models.go
package matchusercards

import "cardmatch-workers/internal/models"

type Input struct {
	UserID      string              `json:"userId"`
	UserProfile *models.UserProfile `json:"userProfile"`
	TopN        int                 `json:"topN"`
}

type Output struct {
	RecommendationID string           `json:"recommendationId"`
	Tier             string           `json:"tier"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// Recommendation is the process-variable shape of one ranked card.
type Recommendation struct {
	CardID         string   `json:"cardId"`
	CardName       string   `json:"cardName"`
	Issuer         string   `json:"issuer"`
	Category       string   `json:"category"`
	AnnualFee      float64  `json:"annualFee"`
	RewardsType    string   `json:"rewardsType,omitempty"`
	Benefits       []string `json:"benefits,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	ApplicationURL string   `json:"applicationUrl,omitempty"`
	MatchScore     float64  `json:"matchScore"`
	RawSimilarity  float64  `json:"rawSimilarity"`
}
