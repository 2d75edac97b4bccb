package game

import (
	"fmt"
	rand "math/rand/v2"
)

// Game is one player's session against the dealer. It owns the bankroll and
// at most one in-progress round, and builds a fresh shuffled deck per round.
type Game struct {
	rng      *rand.Rand
	bankroll *Bankroll
	current  *Round
	rounds   int
	cfg      *config
}

// NewGame creates a session with the given starting money. The RNG is
// required to make shuffling explicit and testing deterministic.
func NewGame(rng *rand.Rand, initialBankroll float64, opts ...Option) (*Game, error) {
	if rng == nil {
		panic("rng is required for game creation")
	}

	bankroll, err := NewBankroll(initialBankroll)
	if err != nil {
		return nil, err
	}

	return &Game{
		rng:      rng,
		bankroll: bankroll,
		cfg:      newConfig(opts),
	}, nil
}

// StartRound shuffles a new deck and deals. It fails with ErrRoundInProgress
// while the previous round is unsettled and with ErrBankrupt when there is
// no money left to bet.
func (g *Game) StartRound() (*Round, error) {
	if g.current != nil && !g.current.Phase().Done() {
		return nil, fmt.Errorf("%w: round %s is in %s", ErrRoundInProgress, g.current.ID(), g.current.Phase())
	}
	if g.bankroll.IsBroke() {
		return nil, ErrBankrupt
	}

	d := g.cfg.decks(g.rng)
	d.Shuffle()

	r, err := newRound(d, g.cfg)
	if err != nil {
		g.current = nil
		return nil, err
	}

	g.current = r
	g.rounds++
	g.cfg.logger.Debug("Round started",
		"round", r.ID(),
		"number", g.rounds,
		"bankroll", g.bankroll.Balance(),
		"blackjack", r.PlayerBlackjack())
	return r, nil
}

// ApplyPlayerDecision forwards a hit or stand to the current round
func (g *Game) ApplyPlayerDecision(d Decision) (PlayerTurnResult, error) {
	r, err := g.round()
	if err != nil {
		return PlayerTurnResult{}, err
	}
	return r.ApplyPlayerDecision(d)
}

// RunDealerTurn plays the dealer's hand for the current round
func (g *Game) RunDealerTurn() (DealerTurnResult, error) {
	r, err := g.round()
	if err != nil {
		return DealerTurnResult{}, err
	}
	return r.RunDealerTurn()
}

// Settle applies bet to the session bankroll
func (g *Game) Settle(bet float64) (Settlement, error) {
	r, err := g.round()
	if err != nil {
		return Settlement{}, err
	}

	s, err := r.Settle(g.bankroll, bet)
	if err != nil {
		return Settlement{}, err
	}

	g.cfg.logger.Debug("Round settled",
		"round", s.RoundID,
		"outcome", s.Outcome,
		"bet", s.Bet,
		"player", s.PlayerTotal,
		"dealer", s.DealerTotal,
		"bankroll", s.Bankroll)
	return s, nil
}

// ValidateBet checks a bet against the current bankroll without changing it
func (g *Game) ValidateBet(bet float64) error {
	return g.bankroll.ValidateBet(bet)
}

// CurrentBankroll returns the session's money
func (g *Game) CurrentBankroll() float64 {
	return g.bankroll.Balance()
}

// IsBroke reports whether the bankroll is exhausted
func (g *Game) IsBroke() bool {
	return g.bankroll.IsBroke()
}

// Rebuy refills an exhausted bankroll. Not allowed mid-round.
func (g *Game) Rebuy(amount float64) error {
	if g.current != nil && !g.current.Phase().Done() {
		return fmt.Errorf("%w: cannot rebuy", ErrRoundInProgress)
	}
	if err := g.bankroll.Rebuy(amount); err != nil {
		return err
	}

	g.cfg.logger.Info("Rebuy", "amount", amount)
	g.cfg.bus.Publish(RebuyEvent{
		Amount:    amount,
		timestamp: g.cfg.clock.Now(),
	})
	return nil
}

// CurrentRound returns the most recent round, or nil before the first deal
func (g *Game) CurrentRound() *Round {
	return g.current
}

// RoundsPlayed returns the number of rounds dealt in this session
func (g *Game) RoundsPlayed() int {
	return g.rounds
}

func (g *Game) round() (*Round, error) {
	if g.current == nil {
		return nil, fmt.Errorf("%w: no round started", ErrWrongPhase)
	}
	return g.current, nil
}
