package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in construction order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in construction order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Points returns the nominal blackjack value of the rank. Aces count 11;
// downgrading them to 1 is the hand's job, not the card's.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten && r <= King:
		return 10
	case r >= Two && r <= Nine:
		return int(r)
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Points returns the nominal blackjack value of the card
func (c Card) Points() int {
	return c.Rank.Points()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a card in short notation: a rank (2-9, T or 10, J, Q, K, A)
// followed by a suit letter (h, d, c, s). Case insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rank, err := parseRank(strings.ToUpper(s[:len(s)-1]))
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCards parses a concatenated run of cards such as "AsKd10h".
func ParseCards(s string) ([]Card, error) {
	cards := []Card{}
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		n := 2
		if strings.HasPrefix(s, "10") {
			n = 3
		}
		if len(s) < n {
			return nil, fmt.Errorf("truncated card %q", s)
		}
		card, err := ParseCard(s[:n])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
		s = s[n:]
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return Rank(s[0] - '0'), nil
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	case 's', 'S':
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit %q", string(b))
}
