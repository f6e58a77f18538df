// internal/models/card.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EligibilityRequirements is the catalog-stated hard gate for a card.
// Every field is optional; an absent field is always permissive.
type EligibilityRequirements struct {
	CreditScore      string `json:"credit_score,omitempty"`
	EmploymentStatus string `json:"employment_status,omitempty"`
	Citizenship      string `json:"citizenship,omitempty"`
	Income           string `json:"income,omitempty"`
}

// CardRecord is the raw catalog shape. Legacy catalog rows carry the annual
// fee as a currency string under annual_fee and benefits as one
// comma-separated string; newer rows use a numeric annualFee and a benefits
// list. Both shapes are normalized exactly once, at ingestion.
type CardRecord struct {
	ID                string                   `json:"id,omitempty"`
	Name              string                   `json:"name"`
	Bank              string                   `json:"bank,omitempty"`
	Issuer            string                   `json:"issuer,omitempty"`
	Category          string                   `json:"category,omitempty"`
	Type              string                   `json:"type,omitempty"`
	AnnualFee         *float64                 `json:"annualFee,omitempty"`
	AnnualFeeText     string                   `json:"annual_fee,omitempty"`
	RewardsType       string                   `json:"rewardsType,omitempty"`
	Benefits          json.RawMessage          `json:"benefits,omitempty"`
	CreditScoreNeeded string                   `json:"creditScoreNeeded,omitempty"`
	ImageURL          string                   `json:"image_url,omitempty"`
	ApplicationURL    string                   `json:"application_url,omitempty"`
	Requirements      *EligibilityRequirements `json:"eligibility_requirements,omitempty"`
}

// CreditCard is the canonical card shape used by the matching and
// pre-approval pipelines. Immutable for the duration of a request.
type CreditCard struct {
	ID             string                   `json:"id,omitempty"`
	Name           string                   `json:"name"`
	Issuer         string                   `json:"issuer,omitempty"`
	Category       string                   `json:"category,omitempty"`
	Type           string                   `json:"type,omitempty"`
	AnnualFee      float64                  `json:"annualFee"`
	AnnualFeeRaw   string                   `json:"annualFeeRaw,omitempty"`
	HasAnnualFee   bool                     `json:"hasAnnualFee"`
	RewardsType    string                   `json:"rewardsType,omitempty"`
	Benefits       []string                 `json:"benefits,omitempty"`
	ImageURL       string                   `json:"imageUrl,omitempty"`
	ApplicationURL string                   `json:"applicationUrl,omitempty"`
	Requirements   *EligibilityRequirements `json:"eligibilityRequirements,omitempty"`

	// creditScoreNeeded from the raw record, falling back to the
	// requirements sub-record when absent.
	CreditScoreNeeded string `json:"creditScoreNeeded,omitempty"`
}

// Canonicalize normalizes a raw catalog record into the single CreditCard
// shape the pipelines consume.
func (r *CardRecord) Canonicalize() CreditCard {
	card := CreditCard{
		ID:             r.ID,
		Name:           r.Name,
		Category:       r.Category,
		Type:           r.Type,
		RewardsType:    r.RewardsType,
		ImageURL:       r.ImageURL,
		ApplicationURL: r.ApplicationURL,
		Requirements:   r.Requirements,
	}

	// bank and issuer are the same concept under two historical names
	card.Issuer = r.Bank
	if card.Issuer == "" {
		card.Issuer = r.Issuer
	}

	if r.AnnualFee != nil {
		card.AnnualFee = *r.AnnualFee
		card.HasAnnualFee = true
	} else if r.AnnualFeeText != "" {
		card.AnnualFee = ParseFeeString(r.AnnualFeeText)
		card.AnnualFeeRaw = r.AnnualFeeText
		card.HasAnnualFee = true
	}

	card.Benefits = parseBenefits(r.Benefits)

	card.CreditScoreNeeded = r.CreditScoreNeeded
	if card.CreditScoreNeeded == "" && r.Requirements != nil {
		card.CreditScoreNeeded = r.Requirements.CreditScore
	}

	return card
}

// ParseFeeString extracts a numeric fee from a currency-formatted string
// such as "$95" or "$1,500.00". Malformed input yields 0, never an error.
func ParseFeeString(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return parsed
}

// parseBenefits accepts either a JSON string (possibly comma-separated) or
// a JSON array of strings.
func parseBenefits(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil || single == "" {
		return nil
	}

	parts := strings.Split(single, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// RequiredCreditScore returns the card's stated credit score requirement
// label, preferring the top-level field over the requirements sub-record.
func (c *CreditCard) RequiredCreditScore() string {
	if c.CreditScoreNeeded != "" {
		return c.CreditScoreNeeded
	}
	if c.Requirements != nil {
		return c.Requirements.CreditScore
	}
	return ""
}
