// Package extract pulls structured values out of raw message text.
package extract

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Amount returns the first decimal number found anywhere in text, or zero if
// none is present. The first-match rule is a contract: multi-number utterances
// like "I bought 2 items for 200" yield 2, and downstream replies assume it.
func Amount(text string) decimal.Decimal {
	m := amountPattern.FindString(text)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}
