package model

import (
	"github.com/shopspring/decimal"
)

// Record holds the running financial totals for one chat session.
// All fields are non-negative; no operation ever decrements a total.
type Record struct {
	Budget   decimal.Decimal `json:"budget"`
	Spent    decimal.Decimal `json:"spent"`
	Saved    decimal.Decimal `json:"saved"`
	Invested decimal.Decimal `json:"invested"`
	Income   decimal.Decimal `json:"income"`
}

// NewRecord returns a zeroed Record for a previously unseen chat.
func NewRecord() Record {
	return Record{
		Budget:   decimal.Zero,
		Spent:    decimal.Zero,
		Saved:    decimal.Zero,
		Invested: decimal.Zero,
		Income:   decimal.Zero,
	}
}

// Remaining computes budget - spent + saved. Income and invested are
// deliberately excluded from the remaining-budget figure.
func (r Record) Remaining() decimal.Decimal {
	return r.Budget.Sub(r.Spent).Add(r.Saved)
}

// Overspent reports whether spending has exceeded the monthly budget.
func (r Record) Overspent() bool {
	return r.Spent.GreaterThan(r.Budget)
}
