// internal/models/card_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_NumericFeeForm(t *testing.T) {
	fee := 95.0
	record := CardRecord{
		ID:          "card-1",
		Name:        "Rewards Plus",
		Bank:        "First National",
		Category:    "rewards",
		AnnualFee:   &fee,
		RewardsType: "rewards",
		Benefits:    json.RawMessage(`["Purchase protection","Extended warranty"]`),
	}

	card := record.Canonicalize()

	assert.Equal(t, 95.0, card.AnnualFee)
	assert.Empty(t, card.AnnualFeeRaw)
	assert.True(t, card.HasAnnualFee)
	assert.Equal(t, "First National", card.Issuer)
	assert.Equal(t, []string{"Purchase protection", "Extended warranty"}, card.Benefits)
}

func TestCanonicalize_LegacyStringForms(t *testing.T) {
	record := CardRecord{
		Name:          "First Step Secured",
		Issuer:        "Community Bank",
		AnnualFeeText: "$1,500.00",
		Benefits:      json.RawMessage(`"Credit building, Free score access, "`),
		Requirements:  &EligibilityRequirements{CreditScore: "poor"},
	}

	card := record.Canonicalize()

	assert.Equal(t, 1500.0, card.AnnualFee)
	assert.Equal(t, "$1,500.00", card.AnnualFeeRaw)
	assert.True(t, card.HasAnnualFee)
	// issuer falls back when bank is absent
	assert.Equal(t, "Community Bank", card.Issuer)
	// comma-split with empty fragments dropped
	assert.Equal(t, []string{"Credit building", "Free score access"}, card.Benefits)
	// requirement label backfills the top-level field
	assert.Equal(t, "poor", card.CreditScoreNeeded)
}

func TestCanonicalize_NoFee(t *testing.T) {
	card := (&CardRecord{Name: "Mystery Card"}).Canonicalize()

	assert.False(t, card.HasAnnualFee)
	assert.Zero(t, card.AnnualFee)
	assert.Nil(t, card.Benefits)
}

func TestParseFeeString(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"$95", 95},
		{"$1,500.00", 1500},
		{"$0", 0},
		{"No annual fee", 0},
		{"", 0},
		{"95 USD", 95},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFeeString(tt.input))
		})
	}
}

func TestRequiredCreditScore(t *testing.T) {
	card := CreditCard{
		CreditScoreNeeded: "good",
		Requirements:      &EligibilityRequirements{CreditScore: "excellent"},
	}
	assert.Equal(t, "good", card.RequiredCreditScore())

	card.CreditScoreNeeded = ""
	assert.Equal(t, "excellent", card.RequiredCreditScore())

	card.Requirements = nil
	assert.Empty(t, card.RequiredCreditScore())
}

func TestCardRecord_UnmarshalBothShapes(t *testing.T) {
	var record CardRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Everyday Cash",
		"annualFee": 0,
		"benefits": ["2% cash back"]
	}`), &record))
	require.NotNil(t, record.AnnualFee)
	assert.Zero(t, *record.AnnualFee)

	var legacy CardRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "First Step Secured",
		"annual_fee": "$0",
		"benefits": "Credit building"
	}`), &legacy))
	assert.Equal(t, "$0", legacy.AnnualFeeText)
}
