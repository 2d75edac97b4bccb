package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// Blackjack is the best possible total
	Blackjack = 21

	// DealerStandsOn is the total at which the dealer stops drawing
	DealerStandsOn = 17

	aceDowngrade = 10
)

// HandValue computes the blackjack total of cards. Every ace starts at 11 and
// is downgraded to 1, one at a time, only while the total exceeds 21. The
// result may still exceed 21; deciding that it is a bust is up to the caller.
func HandValue(cards []deck.Card) int {
	total, _ := evaluate(cards)
	return total
}

// evaluate returns the total and the number of aces still counted as 11
func evaluate(cards []deck.Card) (int, int) {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.Points()
		if c.IsAce() {
			aces++
		}
	}

	for total > Blackjack && aces > 0 {
		total -= aceDowngrade
		aces--
	}

	return total, aces
}

// Hand is an ordered sequence of cards owned by the player or the dealer
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	return &Hand{cards: slices.Clone(cards)}
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value returns the blackjack total, computed on demand
func (h *Hand) Value() int {
	return HandValue(h.cards)
}

// IsSoft reports whether an ace is still being counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := evaluate(h.cards)
	return soft > 0
}

// IsBust reports whether the total exceeds 21
func (h *Hand) IsBust() bool {
	return h.Value() > Blackjack
}

// IsBlackjack reports a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == Blackjack
}

// String renders the hand as "A♠ K♥ (21)"
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), h.Value())
}
