package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period selects a part of the month.
type Period int

const (
	WholeMonth Period = iota // All four weeks
	FirstHalf                // Days 1 to 15
	SecondHalf               // Day 16 until the end of the month
)

// WeekOfDay returns the number of the week map (1-4) a day of month is filed under.
func WeekOfDay(day int) int {
	switch {
	case day <= 7:
		return 1
	case day <= 15:
		return 2
	case day <= 22:
		return 3
	default:
		return 4
	}
}

// WeekDays returns the first and the last day of month filed under the
// week map with the given number (1-4).
func WeekDays(week int) (first, last int) {
	switch week {
	case 1:
		return 1, 7
	case 2:
		return 8, 15
	case 3:
		return 16, 22
	default:
		return 23, 31
	}
}

// DayKey formats a day of month as the key used in the week maps.
func DayKey(day int) string {
	return fmt.Sprintf("%02d", day)
}

// BucketTotal sums all entries of an expense category in the period.
// Planned entries are included, this is the ledger view.
func BucketTotal(e Expense, p Period) decimal.Decimal {
	weeks := e.Weeks()

	var selected []Week
	switch p {
	case FirstHalf:
		selected = weeks[:2]
	case SecondHalf:
		selected = weeks[2:]
	default:
		selected = weeks[:]
	}

	total := decimal.Zero
	for _, week := range selected {
		for _, items := range week {
			for _, item := range items {
				total = total.Add(item.Amount)
			}
		}
	}
	return total
}

// Percent returns the rounded share of plan that total represents, in percent.
func Percent(total, plan decimal.Decimal) decimal.Decimal {
	if plan.IsZero() {
		return decimal.Zero
	}
	return RoundHalfUp(total.Mul(decimal.NewFromInt(100)).Div(plan))
}

// planSources maps expense categories to the checklist categories their plan is made of.
var planSources = map[string][]string{
	"продукты":          {"продукты"},
	"бонусы и кафе":     {"бонусы", "кафе"},
	"салоны красоты":    {"салоны"},
	"косметика, одежда": {"косметика", "одежда"},
	"здоровье и тело":   {"тело"},
	"английский":        {"английский"},
	"китайский":         {"китайский"},
	"образование":       {"трейдинг", "вартик", "обучение"},
	"подписки":          {"chatgpt", "vk music", "telegram", "подписки"},
	"такси":             {"такси"},
	"прочее":            {"прочее", "стэф", "родители", "подарки", "дом", "вейп"},
}

// PlanFor derives the plan of an expense category from the expected
// amounts of the checklist categories it is made of. For each source
// category the first matching need and the first matching want count.
// Unknown expense categories have a plan of zero.
func PlanFor(category string, needs, wants []ChecklistItem) decimal.Decimal {
	plan := decimal.Zero
	for _, source := range planSources[Key(category)] {
		for _, list := range [][]ChecklistItem{needs, wants} {
			for _, item := range list {
				if Key(item.Category) == source {
					plan = plan.Add(item.Expected)
					break
				}
			}
		}
	}
	return plan
}

// RouteComment returns the index of the expense category named like the
// comment, or -1 if the comment is empty or names no category.
func RouteComment(comment string, categories []string) int {
	key := Key(comment)
	if key == "" {
		return -1
	}

	for i, c := range categories {
		if Key(c) == key {
			return i
		}
	}
	return -1
}
