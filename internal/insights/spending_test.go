// internal/insights/spending_test.go
package insights

import (
	"testing"

	"cardmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func samplePurchases() []models.Purchase {
	return []models.Purchase{
		{MerchantName: "Delta", Category: "travel", Amount: 400},
		{MerchantName: "Chipotle", Category: "restaurants", Amount: 50},
		{MerchantName: "United", Category: "travel", Amount: 200},
		{MerchantName: "Kroger", Category: "groceries", Amount: 150},
		{MerchantName: "Shell", Category: "gas", Amount: 200},
	}
}

func TestAnalyzePurchases(t *testing.T) {
	profile := AnalyzePurchases(samplePurchases())

	assert.Equal(t, float64(1000), profile.TotalSpent)
	assert.Len(t, profile.Categories, 4)

	assert.Equal(t, "travel", profile.TopCategory.Category)
	assert.Equal(t, float64(600), profile.TopCategory.TotalAmount)
	assert.Equal(t, 2, profile.TopCategory.TransactionCount)
	assert.Equal(t, float64(300), profile.TopCategory.AverageAmount)
	assert.InDelta(t, 60, profile.TopCategory.Percentage, 1e-9)

	assert.InDelta(t, 60, profile.SpendingPattern.Travel, 1e-9)
	assert.InDelta(t, 5, profile.SpendingPattern.Restaurants, 1e-9)
	assert.InDelta(t, 15, profile.SpendingPattern.Groceries, 1e-9)
	assert.InDelta(t, 20, profile.SpendingPattern.Gas, 1e-9)
	assert.Zero(t, profile.SpendingPattern.Hotel)
}

func TestAnalyzePurchases_TiesKeepFirstSeenOrder(t *testing.T) {
	profile := AnalyzePurchases([]models.Purchase{
		{Category: "gas", Amount: 100},
		{Category: "groceries", Amount: 100},
	})

	assert.Equal(t, "gas", profile.Categories[0].Category)
	assert.Equal(t, "groceries", profile.Categories[1].Category)
}

func TestAnalyzePurchases_Empty(t *testing.T) {
	profile := AnalyzePurchases(nil)

	assert.Zero(t, profile.TotalSpent)
	assert.Empty(t, profile.Categories)
	assert.Equal(t, CategoryAnalysis{}, profile.TopCategory)
	assert.Equal(t, SpendingPattern{}, profile.SpendingPattern)
}

func TestSpendingInsights(t *testing.T) {
	t.Run("empty profile", func(t *testing.T) {
		insights := SpendingInsights(SpendingProfile{})
		assert.Equal(t, []string{
			"No spending data available. Complete the survey to see personalized insights!",
		}, insights)
	})

	t.Run("dining and travel heavy", func(t *testing.T) {
		profile := SpendingProfile{
			TotalSpent:  2000,
			Categories:  []CategoryAnalysis{{Category: "restaurants", TotalAmount: 1000}},
			TopCategory: CategoryAnalysis{Category: "restaurants"},
			SpendingPattern: SpendingPattern{
				Travel:         30,
				Gas:            10,
				OnlineShopping: 10,
			},
		}

		insights := SpendingInsights(profile)
		assert.Contains(t, insights, "You're a food enthusiast! Consider dining rewards cards.")
		assert.Contains(t, insights, "High travel spending detected. Travel rewards cards could maximize your benefits.")
		assert.Len(t, insights, 2)
	})
}
