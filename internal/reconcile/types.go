// Package reconcile attributes daily expense entries to the actual totals
// of the budget checklists.
//
// Everything in this package works on plain values. Nothing here reads from
// or writes to the database, callers load the data, call into the package
// and persist what they get back.
package reconcile

import (
	"github.com/shopspring/decimal"
)

// ChecklistItem is a single planned budget line, either a need or a want.
type ChecklistItem struct {
	ID            string              `json:"id"`
	Category      string              `json:"category"`
	Expected      decimal.Decimal     `json:"expected"`
	Actual        decimal.NullDecimal `json:"actual"`
	Diff          decimal.Decimal     `json:"diff"`
	Done          bool                `json:"done"`
	Envelope      string              `json:"envelope,omitempty"`      // Emoji tag of the envelope
	DailyCategory string              `json:"dailyCategory,omitempty"` // Explicit link to an expense category
}

// ExpenseItem is one entry in the daily ledger.
type ExpenseItem struct {
	Amount      decimal.Decimal `json:"amount"`
	Comment     string          `json:"comment"`
	IsPlanned   bool            `json:"isPlanned,omitempty"`   // Future-dated placeholder, never reconciled
	PlannedDate string          `json:"plannedDate,omitempty"` // "DD.MM"
}

// Week maps a two digit day of month ("01".."31") to the entries of that day.
type Week map[string][]ExpenseItem

// Expense is an expense category bucket with all entries of the month.
type Expense struct {
	Category string          `json:"category"`
	Plan     decimal.Decimal `json:"plan"`
	Week1    Week            `json:"week1"`
	Week2    Week            `json:"week2"`
	Week3    Week            `json:"week3"`
	Week4    Week            `json:"week4"`
	Total    decimal.Decimal `json:"total"`
	Percent  decimal.Decimal `json:"percent"`
	Color    string          `json:"color"`
	Envelope string          `json:"envelope,omitempty"` // Envelope name
}

// Weeks returns the four week maps in order.
func (e Expense) Weeks() [4]Week {
	return [4]Week{e.Week1, e.Week2, e.Week3, e.Week4}
}

// Week returns the week map with the given number (1-4), allocating it
// when it is nil. Numbers above 4 return the last week.
func (e *Expense) Week(n int) Week {
	var w *Week
	switch n {
	case 1:
		w = &e.Week1
	case 2:
		w = &e.Week2
	case 3:
		w = &e.Week3
	default:
		w = &e.Week4
	}

	if *w == nil {
		*w = Week{}
	}
	return *w
}
