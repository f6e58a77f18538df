// internal/preapproval/parse.go
package preapproval

import (
	"regexp"
	"strconv"
	"strings"

	"cardmatch-workers/internal/models"
)

// Numeric parsing helpers for the free-text profile and catalog fields.
// All of them return 0 for absent or malformed input; bad data degrades
// scoring quality silently, it never raises.

var (
	incomeRangeRe  = regexp.MustCompile(`\$?([\d,]+)\s*-\s*\$?([\d,]+)`)
	incomeSingleRe = regexp.MustCompile(`\$?([\d,]+)`)
	firstIntRe     = regexp.MustCompile(`(\d+)`)
	leadingIntRe   = regexp.MustCompile(`^\s*(\d+)`)
)

// NumericCreditScore extracts a leading integer from a credit score field.
// Label-form buckets like "Excellent (720-850)" have no leading digits and
// yield 0, which matches the reference scoring behavior for such input.
func NumericCreditScore(label string) int {
	m := leadingIntRe.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// ParseAnnualIncome converts a free-text income field into a number. Range
// labels like "$25,000 - $50,000" average the endpoints; single values like
// "$50,000" or "< $25,000" take the first numeric token.
func ParseAnnualIncome(income string) float64 {
	if income == "" {
		return 0
	}

	if m := incomeRangeRe.FindStringSubmatch(income); m != nil {
		low, _ := strconv.ParseFloat(stripCommas(m[1]), 64)
		high, _ := strconv.ParseFloat(stripCommas(m[2]), 64)
		return (low + high) / 2
	}

	if m := incomeSingleRe.FindStringSubmatch(income); m != nil {
		v, _ := strconv.ParseFloat(stripCommas(m[1]), 64)
		return v
	}

	return 0
}

// ParseIncomeRequirement converts a catalog-stated minimum income such as
// "$40,000+" into a number.
func ParseIncomeRequirement(income string) float64 {
	cleaned := strings.NewReplacer(",", "", "$", "").Replace(income)
	m := firstIntRe.FindStringSubmatch(cleaned)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}

// AnnualFeeAmount extracts the fee used by the pre-approval model. The
// numeric catalog field wins outright; the string form takes the first run
// of digits, without re-parsing when the numeric form exists.
func AnnualFeeAmount(card *models.CreditCard) float64 {
	if card.AnnualFeeRaw == "" {
		return card.AnnualFee
	}
	m := firstIntRe.FindStringSubmatch(card.AnnualFeeRaw)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
