package reconcile

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// totals accumulates attributed amounts per checklist category key.
type totals map[string]decimal.Decimal

func (t totals) add(key string, amount decimal.Decimal) {
	t[key] = t[key].Add(amount)
}

// Reconcile recomputes the actual amounts of all checklist items from the
// expense entries dated on or before cutoffDay.
//
// The actual values are rebuilt from zero on every call, so calling it
// repeatedly with the same input always yields the same result. The input
// slices are not modified.
func Reconcile(expenses []Expense, needs, wants []ChecklistItem, cutoffDay int) ([]ChecklistItem, []ChecklistItem) {
	checklist := make([]ChecklistItem, 0, len(needs)+len(wants))
	checklist = append(checklist, needs...)
	checklist = append(checklist, wants...)

	categories := make(map[string]struct{}, len(checklist))
	for _, item := range checklist {
		categories[Key(item.Category)] = struct{}{}
	}

	t := totals{}
	for _, expense := range expenses {
		bucket := Key(expense.Category)

		for _, week := range expense.Weeks() {
			for day, items := range week {
				d, err := strconv.Atoi(day)
				if err != nil || d > cutoffDay {
					continue
				}

				for _, item := range items {
					if item.IsPlanned {
						continue
					}
					t.attribute(bucket, item, checklist, categories)
				}
			}
		}
	}

	return t.apply(needs), t.apply(wants)
}

// attribute adds a single expense entry to the totals.
func (t totals) attribute(bucket string, item ExpenseItem, checklist []ChecklistItem, categories map[string]struct{}) {
	comment := Key(item.Comment)

	if _, ok := overrides[comment]; ok {
		t.add(otherKey, item.Amount)
		return
	}

	if comment != "" {
		if _, ok := categories[comment]; ok {
			t.add(comment, item.Amount)
			return
		}
	}

	var mapped []ChecklistItem
	for _, c := range checklist {
		if c.DailyCategory != "" && Key(c.DailyCategory) == bucket {
			mapped = append(mapped, c)
		}
	}

	if len(mapped) == 0 {
		t.fallback(bucket, item.Amount, checklist)
		return
	}

	// Without a positive expected sum the amount is split equally
	if !expectedSum(mapped).IsPositive() {
		portion := item.Amount.Div(decimal.NewFromInt(int64(len(mapped))))
		for _, c := range mapped {
			t.add(Key(c.Category), portion)
		}
		return
	}

	t.proportional(mapped, item.Amount)
}

// proportional splits amount over the items by their expected amounts.
// The expected sum must not be zero.
func (t totals) proportional(items []ChecklistItem, amount decimal.Decimal) {
	sum := expectedSum(items)
	for _, item := range items {
		t.add(Key(item.Category), item.Expected.Mul(amount).Div(sum))
	}
}

// apply returns a copy of items with the actual amounts set from the totals.
func (t totals) apply(items []ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	for i, item := range items {
		item.Actual = decimal.NewNullDecimal(RoundHalfUp(t[Key(item.Category)]))
		out[i] = item
	}
	return out
}

func expectedSum(items []ChecklistItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Expected)
	}
	return sum
}
