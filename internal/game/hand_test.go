package game

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
)

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  int
	}{
		{"empty", "", 0},
		{"pair of numerics", "2h3d", 5},
		{"face cards count ten", "KsQd", 20},
		{"blackjack", "AsKd", 21},
		{"soft seventeen", "Ah6c", 17},
		{"ace downgrades when needed", "Ah6c9d", 16},
		{"two aces", "AsAd", 12},
		{"two aces and a ten", "AsAdKc", 12},
		{"two aces and a nine", "AsAd9c", 21},
		{"four aces", "AsAdAcAh", 14},
		{"four aces and a seven", "AsAdAcAh7c", 21},
		{"bust stays bust", "KsQdJc", 30},
		{"bust with downgraded aces", "AsKdQcJh", 31},
		{"ten notation", "10h5c", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := deck.MustParseCards(tt.cards)
			assert.Equal(t, tt.want, HandValue(cards))
			assert.Equal(t, tt.want, NewHand(cards...).Value())
		})
	}
}

func TestHandValueSingleAce(t *testing.T) {
	others := []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine, deck.Ten, deck.King}

	for _, a := range others {
		for _, b := range others {
			cards := []deck.Card{
				deck.NewCard(deck.Spades, deck.Ace),
				deck.NewCard(deck.Hearts, a),
				deck.NewCard(deck.Clubs, b),
			}
			sum := a.Points() + b.Points()
			want := sum + 11
			if sum > 10 {
				want = sum + 1
			}
			assert.Equal(t, want, HandValue(cards), "A %s %s", a, b)
		}
	}
}

func TestHandValueBoundsAndOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 500 {
		d := deck.New(rng)
		d.Shuffle()

		n := 1 + rng.IntN(8)
		cards := make([]deck.Card, 0, n)
		low, high := 0, 0
		for range n {
			c, err := d.Draw()
			assert.NoError(t, err)
			cards = append(cards, c)
			high += c.Points()
			if c.IsAce() {
				low++
			} else {
				low += c.Points()
			}
		}

		v := HandValue(cards)
		assert.GreaterOrEqual(t, v, low)
		assert.LessOrEqual(t, v, high)

		shuffled := append([]deck.Card(nil), cards...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, v, HandValue(shuffled), "value must not depend on card order: %v", cards)
	}
}

func TestHandPredicates(t *testing.T) {
	h := NewHand(deck.MustParseCards("AsKd")...)
	assert.True(t, h.IsBlackjack())
	assert.True(t, h.IsSoft())
	assert.False(t, h.IsBust())

	h = NewHand(deck.MustParseCards("7s4dKh")...)
	assert.False(t, h.IsBlackjack(), "three card 21 is not blackjack")
	assert.Equal(t, 21, h.Value())
	assert.False(t, h.IsSoft())

	h = NewHand(deck.MustParseCards("Ah6c9d")...)
	assert.False(t, h.IsSoft(), "ace already downgraded")

	h.Add(deck.NewCard(deck.Clubs, deck.King))
	assert.True(t, h.IsBust())
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, "A♥ 6♣ 9♦ K♣ (26)", h.String())
}

func TestHandCardsIsCopy(t *testing.T) {
	h := NewHand(deck.MustParseCards("2h3h")...)
	cards := h.Cards()
	cards[0] = deck.NewCard(deck.Spades, deck.Ace)
	assert.Equal(t, 5, h.Value())
}
