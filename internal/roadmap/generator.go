// internal/roadmap/generator.go

// Package roadmap selects the five credit-building milestones a user
// should focus on next, using the generation model when available and a
// deterministic credit-score band table when it is not.
package roadmap

import (
	"context"
	"encoding/json"
	"strings"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/models"
)

// Milestone is one entry of the milestone library.
type Milestone struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Difficulty   string   `json:"difficulty"`
	Requirements []string `json:"requirements"`
	RewardXP     int      `json:"reward_xp"`
}

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// RoadmapSize is the number of milestones a roadmap always contains,
// library size permitting.
const RoadmapSize = 5

// Generator builds personalized roadmaps.
type Generator struct {
	gen    TextGenerator
	logger logger.Logger
}

func NewGenerator(gen TextGenerator, log logger.Logger) *Generator {
	return &Generator{
		gen:    gen,
		logger: log.WithFields(map[string]interface{}{"component": "roadmap"}),
	}
}

// Generate asks the model to pick the five most relevant milestone IDs for
// the profile. Transport failures and malformed JSON fall back to the band
// table; a parseable response is authoritative even when every ID in it is
// unknown. The call itself never fails.
func (g *Generator) Generate(ctx context.Context, user *models.UserProfile, library []Milestone) []Milestone {
	text, err := g.gen.GenerateText(ctx, buildPrompt(user, library))
	if err != nil {
		g.logger.Warn("roadmap generation failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackRoadmap(user, library)
	}

	var ids []string
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &ids); err != nil {
		g.logger.Warn("unparseable roadmap response, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackRoadmap(user, library)
	}

	selected := milestonesByID(ids, library)
	if len(selected) > RoadmapSize {
		selected = selected[:RoadmapSize]
	}
	return selected
}

func buildPrompt(user *models.UserProfile, library []Milestone) string {
	profileJSON, _ := json.MarshalIndent(user, "", "  ")
	libraryJSON, _ := json.MarshalIndent(library, "", "  ")

	var b strings.Builder
	b.WriteString("You are a credit roadmap advisor. Given a user's financial data and the available milestones,\n")
	b.WriteString("select the 5 most relevant milestones that the user should focus on next.\n")
	b.WriteString("Return only a JSON array of milestone IDs.\n\n")
	b.WriteString("User profile:\n")
	b.Write(profileJSON)
	b.WriteString("\n\nAvailable milestones:\n")
	b.Write(libraryJSON)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Pick exactly 5.\n")
	b.WriteString("- Avoid duplicates.\n")
	b.WriteString("- Prefer earlier milestones if the user's score is below 700.\n")
	b.WriteString(`- Return JSON only, like: ["starter_card", "build_700_score", "add_second_card", "maximize_cashback", "upgrade_card"]`)
	return b.String()
}

// stripCodeFences removes markdown code block markers models sometimes wrap
// JSON answers in.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func milestonesByID(ids []string, library []Milestone) []Milestone {
	out := make([]Milestone, 0, len(ids))
	for _, id := range ids {
		for i := range library {
			if library[i].ID == id {
				out = append(out, library[i])
				break
			}
		}
	}
	return out
}

// fallbackBands maps credit score buckets onto fixed milestone sequences.
var fallbackBands = []struct {
	matches func(creditScore, creditLength string) bool
	ids     []string
}{
	{
		matches: func(score, length string) bool {
			return strings.Contains(score, "no credit") ||
				strings.Contains(score, "no-credit") ||
				strings.Contains(score, "bad") ||
				length == "never" || length == "<1"
		},
		ids: []string{"starter_card", "monitor_credit_report", "pay_off_balance", "lower_utilization", "build_700_score"},
	},
	{
		matches: func(score, _ string) bool { return strings.Contains(score, "fair") },
		ids:     []string{"build_700_score", "pay_off_balance", "lower_utilization", "add_second_card", "monitor_credit_report"},
	},
	{
		matches: func(score, _ string) bool { return strings.Contains(score, "good") },
		ids:     []string{"add_second_card", "maximize_cashback", "earn_travel_points", "lower_utilization", "build_700_score"},
	},
	{
		matches: func(score, _ string) bool { return strings.Contains(score, "excellent") },
		ids:     []string{"upgrade_card", "earn_travel_points", "maximize_cashback", "perfect_utilization", "add_second_card"},
	},
}

// FallbackRoadmap picks milestones from a fixed band table keyed on the
// credit score label. Profiles matching no band get the first five library
// entries.
func FallbackRoadmap(user *models.UserProfile, library []Milestone) []Milestone {
	score := strings.ToLower(user.CreditScore)

	for _, band := range fallbackBands {
		if band.matches(score, user.CreditLength) {
			return milestonesByID(band.ids, library)
		}
	}

	if len(library) > RoadmapSize {
		return library[:RoadmapSize]
	}
	return library
}
