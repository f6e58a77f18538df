// internal/roadmap/generator_test.go
package roadmap

import (
	"context"
	"errors"
	"testing"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func testLibrary() []Milestone {
	ids := []string{
		"starter_card", "monitor_credit_report", "pay_off_balance",
		"lower_utilization", "build_700_score", "add_second_card",
		"maximize_cashback", "earn_travel_points", "perfect_utilization",
		"upgrade_card",
	}
	out := make([]Milestone, len(ids))
	for i, id := range ids {
		out[i] = Milestone{ID: id, Title: id, RewardXP: 100}
	}
	return out
}

func milestoneIDs(ms []Milestone) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestGenerate_UsesModelSelection(t *testing.T) {
	gen := &stubGenerator{response: `["starter_card", "build_700_score", "add_second_card", "maximize_cashback", "upgrade_card"]`}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{CreditScore: "good"}, testLibrary())

	assert.Equal(t, []string{
		"starter_card", "build_700_score", "add_second_card", "maximize_cashback", "upgrade_card",
	}, milestoneIDs(result))
	assert.Contains(t, gen.prompt, "credit roadmap advisor")
	assert.Contains(t, gen.prompt, "Pick exactly 5.")
}

func TestGenerate_StripsCodeFences(t *testing.T) {
	gen := &stubGenerator{response: "```json\n[\"upgrade_card\", \"starter_card\"]\n```"}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{}, testLibrary())

	assert.Equal(t, []string{"upgrade_card", "starter_card"}, milestoneIDs(result))
}

func TestGenerate_UnknownIDsAreDropped(t *testing.T) {
	gen := &stubGenerator{response: `["starter_card", "not_a_milestone", "upgrade_card"]`}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{}, testLibrary())

	assert.Equal(t, []string{"starter_card", "upgrade_card"}, milestoneIDs(result))
}

func TestGenerate_AllUnknownIDsYieldEmptySelection(t *testing.T) {
	gen := &stubGenerator{response: `["not_a_milestone", "also_unknown"]`}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{CreditScore: "fair"}, testLibrary())

	// a parseable response is authoritative; no band-table fallback
	assert.Empty(t, result)
}

func TestGenerate_CapsAtFive(t *testing.T) {
	gen := &stubGenerator{response: `["starter_card", "pay_off_balance", "add_second_card", "maximize_cashback", "upgrade_card", "build_700_score", "lower_utilization"]`}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{}, testLibrary())

	assert.Len(t, result, RoadmapSize)
}

func TestGenerate_FallsBackOnTransportError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("GENERATION_FAILED: status 500")}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{CreditScore: "fair"}, testLibrary())

	assert.Equal(t, []string{
		"build_700_score", "pay_off_balance", "lower_utilization", "add_second_card", "monitor_credit_report",
	}, milestoneIDs(result))
}

func TestGenerate_FallsBackOnMalformedJSON(t *testing.T) {
	gen := &stubGenerator{response: "Here are your milestones: starter_card and more"}
	g := NewGenerator(gen, logger.NewNoOpLogger())

	result := g.Generate(context.Background(), &models.UserProfile{CreditScore: "excellent"}, testLibrary())

	assert.Equal(t, []string{
		"upgrade_card", "earn_travel_points", "maximize_cashback", "perfect_utilization", "add_second_card",
	}, milestoneIDs(result))
}

func TestFallbackRoadmap(t *testing.T) {
	library := testLibrary()

	tests := []struct {
		name     string
		user     models.UserProfile
		expected []string
	}{
		{
			name: "no credit history",
			user: models.UserProfile{CreditScore: "No credit history"},
			expected: []string{
				"starter_card", "monitor_credit_report", "pay_off_balance",
				"lower_utilization", "build_700_score",
			},
		},
		{
			name: "short credit length counts as beginner",
			user: models.UserProfile{CreditScore: "good", CreditLength: "<1"},
			expected: []string{
				"starter_card", "monitor_credit_report", "pay_off_balance",
				"lower_utilization", "build_700_score",
			},
		},
		{
			name: "good credit",
			user: models.UserProfile{CreditScore: "Good (670-739)", CreditLength: "2-5"},
			expected: []string{
				"add_second_card", "maximize_cashback", "earn_travel_points",
				"lower_utilization", "build_700_score",
			},
		},
		{
			name: "unmatched label takes first five",
			user: models.UserProfile{CreditScore: "unknown"},
			expected: []string{
				"starter_card", "monitor_credit_report", "pay_off_balance",
				"lower_utilization", "build_700_score",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, milestoneIDs(FallbackRoadmap(&tt.user, library)))
		})
	}
}
