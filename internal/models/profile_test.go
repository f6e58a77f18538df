// internal/models/profile_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCreditScoreLevel(t *testing.T) {
	tests := []struct {
		label    string
		expected CreditScoreLevel
	}{
		{"no credit", ScoreNoCredit},
		{"bad", ScoreBad},
		{"poor", ScoreBad},
		{"Poor (300-579)", ScoreBad},
		{"fair", ScoreFair},
		{"Fair (580-669)", ScoreFair},
		{"good", ScoreGood},
		{"Good (670-739)", ScoreGood},
		{"excellent", ScoreExcellent},
		{"Excellent (740-850)", ScoreExcellent},
		{"", ScoreNoCredit},
		{"something else entirely", ScoreNoCredit},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCreditScoreLevel(tt.label))
		})
	}
}

// Labels containing several keywords resolve to the strongest one listed
// later on the scale.
func TestParseCreditScoreLevel_LaterKeywordWins(t *testing.T) {
	assert.Equal(t, ScoreGood, ParseCreditScoreLevel("good, was fair last year"))
	assert.Equal(t, ScoreExcellent, ParseCreditScoreLevel("fair to excellent"))
}

func TestHoldsCards(t *testing.T) {
	assert.True(t, (&UserProfile{HasCreditCards: "yes"}).HoldsCards())
	assert.False(t, (&UserProfile{HasCreditCards: "no"}).HoldsCards())
	assert.False(t, (&UserProfile{}).HoldsCards())
	assert.False(t, (&UserProfile{HasCreditCards: "Yes"}).HoldsCards())
}
