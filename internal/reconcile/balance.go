package reconcile

import (
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Income is what one income source brings in each half of the month.
type Income struct {
	FirstHalf  decimal.Decimal
	SecondHalf decimal.Decimal
}

// TopUp moves money into an envelope during the month. Top-ups taken from
// the savings or the regular life envelope reduce that envelope.
type TopUp struct {
	ID           string          `json:"id"`
	EnvelopeName string          `json:"envelopeName"`
	Amount       decimal.Decimal `json:"amount"`
	Source       string          `json:"source"`
	Date         string          `json:"date"`
}

// Transfer moves part of the first half deposit from one envelope to another.
type Transfer struct {
	ID           string          `json:"id"`
	FromEnvelope string          `json:"fromEnvelope"`
	ToEnvelope   string          `json:"toEnvelope"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Comment      string          `json:"comment,omitempty"`
}

// EnvelopeBalance is the state of one envelope at the cutoff day.
type EnvelopeBalance struct {
	types.Envelope
	Allocated         decimal.Decimal `json:"allocated" example:"20000"`         // Planned amount including top-ups
	Spent             decimal.Decimal `json:"spent" example:"450"`               // Sum of the actual amounts
	FirstHalfDeposit  decimal.Decimal `json:"firstHalfDeposit" example:"10000"`  // Deposit for days 1-15 before transfers
	SecondHalfDeposit decimal.Decimal `json:"secondHalfDeposit" example:"10000"` // Deposit for days 16-31
	Available         decimal.Decimal `json:"available" example:"10000"`         // Money put into the envelope up to the cutoff day
	Remaining         decimal.Decimal `json:"remaining" example:"9550"`          // Available minus spent
}

// Balances holds all envelopes and the two balances a month is closed with.
type Balances struct {
	Envelopes       []EnvelopeBalance `json:"envelopes"`
	EnvelopeBalance decimal.Decimal   `json:"envelopeBalance" example:"64015"` // Remaining money in all envelopes except the savings
	SavingsBalance  decimal.Decimal   `json:"savingsBalance" example:"52535"`  // Remaining money in the savings
}

var two = decimal.NewFromInt(2)

// EnvelopeBalances computes what is left in every envelope.
//
// Each envelope gets the expected amounts of its checklist items, half of
// it deposited for days 1-15 unless a custom first half deposit is stored.
// The savings envelope gets whatever income is not deposited into the other
// envelopes. Up to day 15 only the first half deposit is available, later
// the whole allocation. Custom deposits that differ from the default move
// the available amount by the difference.
func EnvelopeBalances(needs, wants []ChecklistItem, income []Income, deposits map[string]decimal.Decimal, topUps []TopUp, cutoffDay int) Balances {
	custom := normalizeDeposits(deposits)

	allocated := map[string]decimal.Decimal{}
	spent := map[string]decimal.Decimal{}
	for _, list := range [][]ChecklistItem{needs, wants} {
		for _, item := range list {
			e, err := types.ParseEnvelope(item.Envelope)
			if err != nil {
				continue
			}
			allocated[e.Emoji] = allocated[e.Emoji].Add(item.Expected)
			if item.Actual.Valid {
				spent[e.Emoji] = spent[e.Emoji].Add(item.Actual.Decimal)
			}
		}
	}

	var firstHalfIncome, secondHalfIncome decimal.Decimal
	for _, i := range income {
		firstHalfIncome = firstHalfIncome.Add(i.FirstHalf)
		secondHalfIncome = secondHalfIncome.Add(i.SecondHalf)
	}

	balances := make([]EnvelopeBalance, 0, len(types.Envelopes))
	var firstHalfDeposits, secondHalfDeposits decimal.Decimal
	for _, e := range types.Envelopes {
		if e.Emoji == types.EmojiSavings {
			continue
		}

		b := EnvelopeBalance{
			Envelope:         e,
			Allocated:        allocated[e.Emoji],
			Spent:            spent[e.Emoji],
			FirstHalfDeposit: RoundHalfUp(allocated[e.Emoji].Div(two)),
		}

		first := b.FirstHalfDeposit
		if c, ok := custom[e.Emoji]; ok && c.IsPositive() {
			first = c
		}
		b.SecondHalfDeposit = b.Allocated.Sub(first)

		firstHalfDeposits = firstHalfDeposits.Add(first)
		secondHalfDeposits = secondHalfDeposits.Add(b.SecondHalfDeposit)
		balances = append(balances, b)
	}

	savings, _ := types.ParseEnvelope(types.EmojiSavings)
	save := EnvelopeBalance{
		Envelope:          savings,
		Spent:             spent[types.EmojiSavings],
		FirstHalfDeposit:  firstHalfIncome.Sub(firstHalfDeposits),
		SecondHalfDeposit: secondHalfIncome.Sub(secondHalfDeposits),
	}
	save.Allocated = save.FirstHalfDeposit.Add(save.SecondHalfDeposit)
	balances = append(balances, save)

	result := Balances{Envelopes: balances}
	for i := range balances {
		b := &balances[i]
		b.Allocated = b.Allocated.Add(topUpDelta(topUps, b.Envelope))

		var delta decimal.Decimal
		if c, ok := custom[b.Emoji]; ok && !c.IsZero() {
			delta = c.Sub(b.FirstHalfDeposit)
		}

		if cutoffDay <= 15 {
			b.Available = b.FirstHalfDeposit.Add(delta)
		} else {
			b.Available = b.Allocated.Add(delta)
		}
		b.Remaining = b.Available.Sub(b.Spent)

		if b.Emoji == types.EmojiSavings {
			result.SavingsBalance = result.SavingsBalance.Add(b.Remaining)
		} else {
			result.EnvelopeBalance = result.EnvelopeBalance.Add(b.Remaining)
		}
	}

	return result
}

// topUpDelta returns how much the top-ups change the allocation of the envelope.
func topUpDelta(topUps []TopUp, e types.Envelope) decimal.Decimal {
	var delta decimal.Decimal
	for _, t := range topUps {
		to, err := types.ParseEnvelope(t.EnvelopeName)
		if err == nil && to == e {
			delta = delta.Add(t.Amount)
			continue
		}

		if e.Emoji != types.EmojiSavings && e.Emoji != types.EmojiRegular {
			continue
		}

		if types.SameEnvelope(t.Source, e.Emoji) {
			delta = delta.Sub(t.Amount)
		}
	}
	return delta
}

// ApplyTransfer returns the custom first half deposits after moving the
// amount between the envelopes. Envelopes without a custom deposit start
// from their default first half deposit.
func ApplyTransfer(balances Balances, deposits map[string]decimal.Decimal, from, to types.Envelope, amount decimal.Decimal) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for emoji, d := range normalizeDeposits(deposits) {
		e, _ := types.ParseEnvelope(emoji)
		out[e.Name] = d
	}

	initial := func(e types.Envelope) decimal.Decimal {
		if d, ok := out[e.Name]; ok && !d.IsZero() {
			return d
		}
		for _, b := range balances.Envelopes {
			if b.Envelope == e {
				return b.FirstHalfDeposit
			}
		}
		return decimal.Zero
	}

	fromDeposit := initial(from)
	toDeposit := initial(to)
	out[from.Name] = fromDeposit.Sub(amount)
	out[to.Name] = toDeposit.Add(amount)

	return out
}

// normalizeDeposits keys the deposits by envelope emoji. Unknown envelopes
// are dropped. When several keys name the same envelope, the key that sorts
// last wins.
func normalizeDeposits(deposits map[string]decimal.Decimal) map[string]decimal.Decimal {
	keys := make([]string, 0, len(deposits))
	for k := range deposits {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[string]decimal.Decimal, len(deposits))
	for _, k := range keys {
		e, err := types.ParseEnvelope(k)
		if err != nil {
			continue
		}
		out[e.Emoji] = deposits[k]
	}
	return out
}
