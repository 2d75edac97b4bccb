// Package game implements the blackjack round engine.
//
// The main types are Round, which drives a single hand from the deal through
// settlement, and Game, which owns the Bankroll across rounds and hands out a
// freshly shuffled deck for every round.
//
// # Basic Usage
//
//	g, err := game.NewGame(randutil.New(seed), 100)
//	round, err := g.StartRound()
//	if !round.PlayerBlackjack() {
//	    res, err := g.ApplyPlayerDecision(game.Hit)
//	    ...
//	}
//	dealer, err := g.RunDealerTurn()
//	settlement, err := g.Settle(25)
//
// # Phases
//
// A round moves through PhaseDealing, PhasePlayerTurn, PhaseDealerTurn and
// PhaseSettled. A natural 21 on the deal skips the player turn. Operations
// called out of order fail with ErrWrongPhase and leave the round untouched.
// A failed draw (deck.ErrDeckExhausted) moves the round to PhaseAborted.
//
// # Deterministic Testing
//
// Inject a stacked deck to control every card:
//
//	g, _ := game.NewGame(rng, 100, game.WithDeckSource(func(*rand.Rand) *deck.Deck {
//	    return deck.NewStacked(deck.MustParseCards("AsKd9h7c")...)
//	}))
package game
