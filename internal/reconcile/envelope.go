package reconcile

import (
	"sort"
	"strconv"

	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
)

// HistoryEntry is a realized expense entry shown in the history of an envelope.
type HistoryEntry struct {
	Day      int             `json:"day" example:"5"`
	Amount   decimal.Decimal `json:"amount" example:"450"`
	Comment  string          `json:"comment" example:"Кафе"`
	Category string          `json:"category" example:"Бонусы и кафе"`
}

// EnvelopeTotal sums the checklist items of one envelope.
type EnvelopeTotal struct {
	types.Envelope
	Expected decimal.Decimal `json:"expected" example:"25000"`
	Actual   decimal.Decimal `json:"actual" example:"12000"`
}

const noComment = "Без комментария"

// EnvelopeHistory lists the realized entries that belong to an envelope.
//
// An entry belongs to the envelope when its expense category is in the
// envelope or when its comment names a checklist category of the envelope.
// In the latter case the comment is reported as the category.
func EnvelopeHistory(expenses []Expense, needs, wants []ChecklistItem, envelope types.Envelope) []HistoryEntry {
	categories := map[string]struct{}{}
	for _, list := range [][]ChecklistItem{needs, wants} {
		for _, item := range list {
			if types.SameEnvelope(item.Envelope, envelope.Emoji) {
				categories[Key(item.Category)] = struct{}{}
			}
		}
	}

	history := []HistoryEntry{}
	for _, expense := range expenses {
		inEnvelope := types.SameEnvelope(expense.Envelope, envelope.Name)

		for _, week := range expense.Weeks() {
			for day, items := range week {
				d, err := strconv.Atoi(day)
				if err != nil {
					continue
				}

				for _, item := range items {
					if item.IsPlanned {
						continue
					}

					key := Key(item.Comment)
					_, byComment := categories[key]
					byComment = byComment && key != ""
					if !inEnvelope && !byComment {
						continue
					}

					entry := HistoryEntry{
						Day:      d,
						Amount:   item.Amount,
						Comment:  item.Comment,
						Category: expense.Category,
					}

					if entry.Comment == "" {
						entry.Comment = noComment
					}

					if byComment && !inEnvelope {
						entry.Category = item.Comment
					}

					history = append(history, entry)
				}
			}
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Day != history[j].Day {
			return history[i].Day < history[j].Day
		}
		return history[i].Category < history[j].Category
	})

	return history
}

// EnvelopeSummary sums expected and actual amounts of the checklist items
// per envelope. Items without a known envelope are not counted.
func EnvelopeSummary(needs, wants []ChecklistItem) []EnvelopeTotal {
	summary := make([]EnvelopeTotal, len(types.Envelopes))
	for i, e := range types.Envelopes {
		summary[i] = EnvelopeTotal{Envelope: e}
	}

	for _, list := range [][]ChecklistItem{needs, wants} {
		for _, item := range list {
			for i := range summary {
				if types.SameEnvelope(item.Envelope, summary[i].Emoji) {
					summary[i].Expected = summary[i].Expected.Add(item.Expected)
					summary[i].Actual = summary[i].Actual.Add(item.Actual.Decimal)
					break
				}
			}
		}
	}

	return summary
}
