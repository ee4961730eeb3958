package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key returns the lookup key for a category or comment: trimmed and lower-cased.
func Key(s string) string {
	return lower(strings.TrimSpace(s))
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

var half = decimal.NewFromFloat(0.5)

// RoundHalfUp rounds to the nearest integer with halves rounded towards
// positive infinity.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}
