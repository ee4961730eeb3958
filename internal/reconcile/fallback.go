package reconcile

import "github.com/shopspring/decimal"

// otherKey is the bucket key that collects miscellaneous spending.
const otherKey = "прочее"

// overrides are comments that always count as miscellaneous spending,
// whatever bucket they were entered in.
var overrides = map[string]struct{}{
	"стэф": {},
	"дом":  {},
}

// otherGroup are the checklist categories sharing the miscellaneous bucket.
var otherGroup = map[string]struct{}{
	"прочее":   {},
	"родители": {},
	"подарки":  {},
	"вейп":     {},
	"дом":      {},
	"стэф":     {},
}

// share is one destination of a fixed split. The weight is relative
// to the sum of all weights of the split.
type share struct {
	key    string
	weight decimal.Decimal
}

func weight(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// legacySplits is the fixed fallback for expense categories that no
// checklist item links to with its daily category.
var legacySplits = map[string][]share{
	"бонусы и кафе":     {{"бонусы", weight(1)}, {"кафе", weight(1)}},
	"косметика, одежда": {{"косметика", weight(1)}, {"одежда", weight(1)}},
	"здоровье и тело":   {{"тело", weight(1)}},
	"образование":       {{"вартик", weight(3000)}, {"обучение", weight(5000)}, {"трейдинг", weight(11000)}},
	"подписки":          {{"chatgpt", weight(2600)}, {"vk music", weight(200)}, {"telegram", weight(330)}},
	"салоны красоты":    {{"салоны", weight(1)}},
	"салоны":            {{"салоны", weight(1)}},
}

// fallback attributes an amount by the legacy table. Unknown categories
// keep the amount under their own key.
func (t totals) fallback(bucket string, amount decimal.Decimal, checklist []ChecklistItem) {
	if bucket == otherKey {
		var group []ChecklistItem
		for _, item := range checklist {
			// Group membership is not trimmed
			if _, ok := otherGroup[lower(item.Category)]; ok {
				group = append(group, item)
			}
		}

		// Nothing is attributed when the group has no expected amount
		if expectedSum(group).IsPositive() {
			t.proportional(group, amount)
		}
		return
	}

	split, ok := legacySplits[bucket]
	if !ok {
		t.add(bucket, amount)
		return
	}

	sum := decimal.Zero
	for _, s := range split {
		sum = sum.Add(s.weight)
	}

	for _, s := range split {
		t.add(s.key, amount.Mul(s.weight).Div(sum))
	}
}
