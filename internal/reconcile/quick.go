package reconcile

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// QuickIncrement adds amount to the actual value of the first checklist
// item whose category equals the comment. Needs are searched before wants.
//
// This is the shortcut used when a single entry is added. It does not
// apply any of the fallback rules of Reconcile, so its results can differ
// from a full reconciliation of the same data.
func QuickIncrement(comment string, amount decimal.Decimal, needs, wants []ChecklistItem) ([]ChecklistItem, []ChecklistItem) {
	needs = slices.Clone(needs)
	wants = slices.Clone(wants)

	key := Key(comment)
	if key == "" {
		return needs, wants
	}

	if increment(needs, key, amount) {
		return needs, wants
	}

	increment(wants, key, amount)
	return needs, wants
}

func increment(items []ChecklistItem, key string, amount decimal.Decimal) bool {
	for i := range items {
		if Key(items[i].Category) == key {
			items[i].Actual = decimal.NewNullDecimal(items[i].Actual.Decimal.Add(amount))
			return true
		}
	}
	return false
}
