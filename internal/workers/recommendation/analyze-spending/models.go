// internal/workers/recommendation/analyze-spending/models.go
package analyzespending

import (
	"cardmatch-workers/internal/insights"
	"cardmatch-workers/internal/models"
)

type Input struct {
	UserID    string            `json:"userId"`
	Purchases []models.Purchase `json:"purchases"`
}

type Output struct {
	SpendingProfile insights.SpendingProfile `json:"spendingProfile"`
	Insights        []string                 `json:"insights"`
}
