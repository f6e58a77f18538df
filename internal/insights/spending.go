// internal/insights/spending.go

// Package insights aggregates linked-account purchase history into a
// spending profile used by the dashboard and the roadmap prompt.
package insights

import (
	"sort"

	"cardmatch-workers/internal/models"
)

// CategoryAnalysis is the per-category rollup of a purchase history.
type CategoryAnalysis struct {
	Category         string  `json:"category"`
	TotalAmount      float64 `json:"totalAmount"`
	TransactionCount int     `json:"transactionCount"`
	AverageAmount    float64 `json:"averageAmount"`
	Percentage       float64 `json:"percentage"`
}

// SpendingPattern holds the share of spend in the eight categories the
// radar chart displays. Values are percentages of total spend.
type SpendingPattern struct {
	Restaurants       float64 `json:"restaurants"`
	Travel            float64 `json:"travel"`
	Groceries         float64 `json:"groceries"`
	Gas               float64 `json:"gas"`
	OnlineShopping    float64 `json:"onlineShopping"`
	StreamingServices float64 `json:"streamingServices"`
	Hotel             float64 `json:"hotel"`
	AirportLounge     float64 `json:"airportLounge"`
}

// SpendingProfile is the full analysis of a purchase history.
type SpendingProfile struct {
	TotalSpent      float64            `json:"totalSpent"`
	Categories      []CategoryAnalysis `json:"categories"`
	TopCategory     CategoryAnalysis   `json:"topCategory"`
	SpendingPattern SpendingPattern    `json:"spendingPattern"`
}

// AnalyzePurchases groups purchases by category and computes per-category
// totals, counts, and percentage of total spend. Categories are ordered by
// descending total; ties keep first-seen order. An empty history yields a
// zero-valued profile, never an error.
func AnalyzePurchases(purchases []models.Purchase) SpendingProfile {
	if len(purchases) == 0 {
		return SpendingProfile{Categories: []CategoryAnalysis{}}
	}

	var totalSpent float64
	totals := make(map[string]*CategoryAnalysis)
	order := make([]string, 0)

	for _, p := range purchases {
		totalSpent += p.Amount
		entry, ok := totals[p.Category]
		if !ok {
			entry = &CategoryAnalysis{Category: p.Category}
			totals[p.Category] = entry
			order = append(order, p.Category)
		}
		entry.TotalAmount += p.Amount
		entry.TransactionCount++
	}

	categories := make([]CategoryAnalysis, 0, len(order))
	for _, cat := range order {
		entry := totals[cat]
		entry.AverageAmount = entry.TotalAmount / float64(entry.TransactionCount)
		if totalSpent > 0 {
			entry.Percentage = entry.TotalAmount / totalSpent * 100
		}
		categories = append(categories, *entry)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].TotalAmount > categories[j].TotalAmount
	})

	return SpendingProfile{
		TotalSpent:  totalSpent,
		Categories:  categories,
		TopCategory: categories[0],
		SpendingPattern: SpendingPattern{
			Restaurants:       percentageOf(categories, "restaurants"),
			Travel:            percentageOf(categories, "travel"),
			Groceries:         percentageOf(categories, "groceries"),
			Gas:               percentageOf(categories, "gas"),
			OnlineShopping:    percentageOf(categories, "online-shopping"),
			StreamingServices: percentageOf(categories, "streaming-services"),
			Hotel:             percentageOf(categories, "hotel"),
			AirportLounge:     percentageOf(categories, "airport-lounge"),
		},
	}
}

func percentageOf(categories []CategoryAnalysis, name string) float64 {
	for _, c := range categories {
		if c.Category == name {
			return c.Percentage
		}
	}
	return 0
}

// SpendingInsights renders the dashboard insight lines for a profile. The
// thresholds mirror the dashboard's long-standing copy.
func SpendingInsights(profile SpendingProfile) []string {
	if profile.TotalSpent == 0 && len(profile.Categories) == 0 {
		return []string{"No spending data available. Complete the survey to see personalized insights!"}
	}

	insights := make([]string, 0, 5)

	if profile.TopCategory.Category == "restaurants" {
		insights = append(insights, "You're a food enthusiast! Consider dining rewards cards.")
	}
	if profile.SpendingPattern.Travel > 20 {
		insights = append(insights, "High travel spending detected. Travel rewards cards could maximize your benefits.")
	}
	if profile.SpendingPattern.Gas > 15 {
		insights = append(insights, "Frequent driver detected. Gas rewards cards could save you money.")
	}
	if profile.SpendingPattern.OnlineShopping > 25 {
		insights = append(insights, "Online shopping enthusiast! Consider cards with online purchase bonuses.")
	}
	if profile.SpendingPattern.Groceries > 20 {
		insights = append(insights, "Grocery rewards cards could help you save on everyday purchases.")
	}

	return insights
}
