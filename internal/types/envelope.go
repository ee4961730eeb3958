package types

import (
	"errors"
	"strings"
)

// Envelope is one of the fixed budget envelopes that group checklist
// categories and expense categories.
type Envelope struct {
	Name  string `json:"name" example:"Еда"`
	Emoji string `json:"emoji" example:"🥬"`
}

var ErrUnknownEnvelope = errors.New("there is no envelope with this name or emoji")

// Envelopes lists all envelopes in display order.
var Envelopes = []Envelope{
	{Name: "Образование", Emoji: "🎓"},
	{Name: "Здоровье и красота", Emoji: "🛁"},
	{Name: "Еда", Emoji: "🥬"},
	{Name: "Обычная жизнь", Emoji: "🏠"},
	{Name: "Накопления", Emoji: "💰"},
}

// Emoji of the envelopes that top-ups can be taken from.
const (
	EmojiRegular = "🏠"
	EmojiSavings = "💰"
)

// aliases are the names the browser app stores in its documents.
var aliases = map[string]string{
	"education":         "🎓",
	"health and beauty": "🛁",
	"food":              "🥬",
	"regular":           EmojiRegular,
	"save":              EmojiSavings,
}

var envelopeIndex = func() map[string]Envelope {
	index := make(map[string]Envelope, 3*len(Envelopes))
	for _, e := range Envelopes {
		index[strings.ToLower(e.Name)] = e
		index[e.Emoji] = e
	}
	for alias, emoji := range aliases {
		index[alias] = index[emoji]
	}
	return index
}()

// ParseEnvelope returns the envelope identified by its name, its emoji or
// the name the browser app uses for it. Names are matched case-insensitively.
func ParseEnvelope(s string) (Envelope, error) {
	e, ok := envelopeIndex[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Envelope{}, ErrUnknownEnvelope
	}
	return e, nil
}

// SameEnvelope reports whether a and b identify the same envelope,
// no matter if by name or emoji. Unknown values never match.
func SameEnvelope(a, b string) bool {
	ea, err := ParseEnvelope(a)
	if err != nil {
		return false
	}

	eb, err := ParseEnvelope(b)
	if err != nil {
		return false
	}

	return ea == eb
}
