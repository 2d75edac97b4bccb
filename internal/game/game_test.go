package game

import (
	"io"
	rand "math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

// stackedDecks returns a DeckSource handing out one stacked deck per round.
func stackedDecks(rounds ...string) DeckSource {
	i := 0
	return func(*rand.Rand) *deck.Deck {
		cards := deck.MustParseCards(rounds[i%len(rounds)])
		i++
		return deck.NewStacked(cards...)
	}
}

func newTestGame(t *testing.T, bankroll float64, opts ...Option) *Game {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	opts = append([]Option{WithLogger(logger)}, opts...)
	g, err := NewGame(rand.New(rand.NewPCG(42, 43)), bankroll, opts...)
	require.NoError(t, err)
	return g
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 250)
	assert.Equal(t, 250.0, g.CurrentBankroll())
	assert.Nil(t, g.CurrentRound())
	assert.Equal(t, 0, g.RoundsPlayed())

	_, err := NewGame(rand.New(rand.NewPCG(1, 1)), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Panics(t, func() { _, _ = NewGame(nil, 100) })
}

func TestGameFullRound(t *testing.T) {
	g := newTestGame(t, 100, WithDeckSource(stackedDecks("Ks9h5d6c2h3s4cKd")))

	r, err := g.StartRound()
	require.NoError(t, err)
	assert.Same(t, r, g.CurrentRound())
	assert.Equal(t, 1, g.RoundsPlayed())

	res, err := g.ApplyPlayerDecision(Stand)
	require.NoError(t, err)
	assert.Equal(t, 19, res.Total)

	dealer, err := g.RunDealerTurn()
	require.NoError(t, err)
	assert.Equal(t, 20, dealer.Total)

	s, err := g.Settle(20)
	require.NoError(t, err)
	assert.Equal(t, DealerWin, s.Outcome)
	assert.Equal(t, 80.0, g.CurrentBankroll())
}

func TestGameSettlementExamples(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		hit      bool
		bet      float64
		outcome  Outcome
		bankroll float64
	}{
		{"twenty beats eighteen", "KsQh8dQc", false, 50, PlayerWin, 150},
		{"eighteen ties eighteen", "Ks8h8dQc", false, 50, Tie, 100},
		{"player bust loses bet", "Ks5hQd7cKc", true, 30, DealerWin, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 100, WithDeckSource(stackedDecks(tt.cards)))

			_, err := g.StartRound()
			require.NoError(t, err)

			d := Stand
			if tt.hit {
				d = Hit
			}
			_, err = g.ApplyPlayerDecision(d)
			require.NoError(t, err)

			_, err = g.RunDealerTurn()
			require.NoError(t, err)

			s, err := g.Settle(tt.bet)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, s.Outcome)
			assert.Equal(t, tt.bankroll, g.CurrentBankroll())
		})
	}
}

func TestGameRejectsOverlappingRounds(t *testing.T) {
	g := newTestGame(t, 100, WithDeckSource(stackedDecks("Ks8h8dQc")))

	_, err := g.StartRound()
	require.NoError(t, err)

	_, err = g.StartRound()
	assert.ErrorIs(t, err, ErrRoundInProgress)

	_, err = g.ApplyPlayerDecision(Stand)
	require.NoError(t, err)
	_, err = g.RunDealerTurn()
	require.NoError(t, err)

	_, err = g.StartRound()
	assert.ErrorIs(t, err, ErrRoundInProgress, "still waiting for settlement")

	_, err = g.Settle(10)
	require.NoError(t, err)

	r, err := g.StartRound()
	require.NoError(t, err)
	assert.Equal(t, PhasePlayerTurn, r.Phase())
	assert.Equal(t, 2, g.RoundsPlayed())
}

func TestGameOperationsWithoutRound(t *testing.T) {
	g := newTestGame(t, 100)

	_, err := g.ApplyPlayerDecision(Hit)
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = g.RunDealerTurn()
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = g.Settle(10)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestGameAbortedRoundAllowsNextRound(t *testing.T) {
	g := newTestGame(t, 100, WithDeckSource(stackedDecks("2s3h9d8c", "Ks8h8dQc")))

	_, err := g.StartRound()
	require.NoError(t, err)

	_, err = g.ApplyPlayerDecision(Hit)
	require.ErrorIs(t, err, ErrDeckExhausted)

	_, err = g.StartRound()
	require.NoError(t, err)
	assert.Equal(t, 100.0, g.CurrentBankroll(), "an aborted round never touches the bankroll")
}

func TestGameBrokeAndRebuy(t *testing.T) {
	g := newTestGame(t, 30, WithDeckSource(stackedDecks("Ks5hQd7cKc")))

	assert.ErrorIs(t, g.Rebuy(50), ErrNotBroke)

	_, err := g.StartRound()
	require.NoError(t, err)
	assert.ErrorIs(t, g.Rebuy(50), ErrRoundInProgress)

	_, err = g.ApplyPlayerDecision(Hit)
	require.NoError(t, err)
	_, err = g.RunDealerTurn()
	require.NoError(t, err)
	_, err = g.Settle(30)
	require.NoError(t, err)

	assert.True(t, g.IsBroke())
	_, err = g.StartRound()
	assert.ErrorIs(t, err, ErrBankrupt)

	require.NoError(t, g.Rebuy(50))
	assert.Equal(t, 50.0, g.CurrentBankroll())

	_, err = g.StartRound()
	assert.NoError(t, err)
}

func TestGameValidateBet(t *testing.T) {
	g := newTestGame(t, 100)
	assert.NoError(t, g.ValidateBet(100))
	assert.ErrorIs(t, g.ValidateBet(101), ErrInvalidBet)
	assert.ErrorIs(t, g.ValidateBet(-1), ErrInvalidBet)
}

func TestGameShufflesFreshDeckEachRound(t *testing.T) {
	g := newTestGame(t, 1000)

	var openings [][]deck.Card
	for range 5 {
		r, err := g.StartRound()
		require.NoError(t, err)
		assert.Equal(t, deck.Size-4, r.CardsRemaining())
		openings = append(openings, r.PlayerHand().Cards())

		if r.Phase() == PhasePlayerTurn {
			_, err = g.ApplyPlayerDecision(Stand)
			require.NoError(t, err)
		}
		_, err = g.RunDealerTurn()
		require.NoError(t, err)
		_, err = g.Settle(1)
		require.NoError(t, err)
	}

	distinct := map[string]bool{}
	for _, o := range openings {
		distinct[o[0].String()+o[1].String()] = true
	}
	assert.Greater(t, len(distinct), 1, "rounds should not all deal the same opening")
}
