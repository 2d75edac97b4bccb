package strategy

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func state(player, upcard string) State {
	cards := deck.MustParseCards(player)
	h := game.NewHand(cards...)
	return State{
		PlayerCards:  cards,
		PlayerTotal:  h.Value(),
		Soft:         h.IsSoft(),
		DealerUpcard: deck.MustParseCards(upcard)[0],
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		a, err := New(name, rand.New(rand.NewPCG(1, 2)))
		require.NoError(t, err)
		assert.Equal(t, name, a.Name())
	}

	_, err := New("counting", nil)
	assert.Error(t, err)
}

func TestMimic(t *testing.T) {
	assert.Equal(t, game.Hit, Mimic{}.Decide(state("Ks6h", "2c")))
	assert.Equal(t, game.Stand, Mimic{}.Decide(state("Ks7h", "Ac")))
}

func TestBasic(t *testing.T) {
	tests := []struct {
		name   string
		player string
		upcard string
		want   game.Decision
	}{
		{"hard 11 always hits", "5s6h", "6c", game.Hit},
		{"hard 12 vs 2 hits", "Ks2h", "2c", game.Hit},
		{"hard 12 vs 4 stands", "Ks2h", "4c", game.Stand},
		{"hard 16 vs 6 stands", "Ks6h", "6c", game.Stand},
		{"hard 16 vs 10 hits", "Ks6h", "Qc", game.Hit},
		{"hard 16 vs ace hits", "Ks6h", "Ac", game.Hit},
		{"hard 17 stands", "Ks7h", "Ac", game.Stand},
		{"soft 17 hits", "As6h", "6c", game.Hit},
		{"soft 18 vs 8 stands", "As7h", "8c", game.Stand},
		{"soft 18 vs 9 hits", "As7h", "9c", game.Hit},
		{"soft 19 stands", "As8h", "Tc", game.Stand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Basic{}.Decide(state(tt.player, tt.upcard)))
		})
	}
}

func TestRandomStandsOnTwentyOne(t *testing.T) {
	a, err := New("random", rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)
	for range 20 {
		assert.Equal(t, game.Stand, a.Decide(state("7s7h7d", "2c")))
	}
}

func TestPlayRound(t *testing.T) {
	g, err := game.NewGame(rand.New(rand.NewPCG(1, 1)), 100,
		game.WithDeckSource(func(*rand.Rand) *deck.Deck {
			return deck.NewStacked(deck.MustParseCards("Ks6h5d6cQd9s")...)
		}))
	require.NoError(t, err)

	s, err := PlayRound(g, Mimic{}, 10)
	require.NoError(t, err)
	assert.Equal(t, game.DealerWin, s.Outcome)
	assert.True(t, s.PlayerBusted)
	assert.Equal(t, 90.0, g.CurrentBankroll())

	_, err = PlayRound(g, Mimic{}, 1000)
	assert.ErrorIs(t, err, game.ErrInvalidBet)
}

func TestPlayRoundManySeeds(t *testing.T) {
	for _, name := range Names() {
		g, err := game.NewGame(rand.New(rand.NewPCG(9, 9)), 10_000)
		require.NoError(t, err)
		agent, err := New(name, rand.New(rand.NewPCG(3, 3)))
		require.NoError(t, err)

		for range 200 {
			before := g.CurrentBankroll()
			s, err := PlayRound(g, agent, 5)
			require.NoError(t, err)
			assert.Equal(t, before+s.Delta, g.CurrentBankroll())
			assert.Contains(t, []float64{-5, 0, 5}, s.Delta)
		}
	}
}
