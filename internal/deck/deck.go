package deck

import (
	"errors"
	rand "math/rand/v2"
	"slices"
)

// ErrDeckExhausted is returned when drawing from a deck with no cards left.
var ErrDeckExhausted = errors.New("deck exhausted")

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a new standard 52-card deck in construction order. Call Shuffle
// before drawing.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewStacked creates a deck that deals the given cards in order. Shuffle is a
// no-op on a stacked deck so replays and tests stay deterministic.
func NewStacked(cards ...Card) *Deck {
	return &Deck{cards: slices.Clone(cards)}
}

// Shuffle randomizes the order of the remaining cards (Fisher-Yates)
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top first
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

// Contains reports whether the card is still in the deck
func (d *Deck) Contains(card Card) bool {
	return slices.Contains(d.cards, card)
}
