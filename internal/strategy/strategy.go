// Package strategy provides automated players for simulations.
package strategy

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// State is the read-only view an agent decides from. The dealer's hole card
// is never included.
type State struct {
	PlayerCards  []deck.Card
	PlayerTotal  int
	Soft         bool
	DealerUpcard deck.Card
}

// StateFromRound builds the agent view of a round
func StateFromRound(r *game.Round) State {
	h := r.PlayerHand()
	return State{
		PlayerCards:  h.Cards(),
		PlayerTotal:  h.Value(),
		Soft:         h.IsSoft(),
		DealerUpcard: r.DealerUpcard(),
	}
}

// Agent decides hit or stand for the player
type Agent interface {
	Name() string
	Decide(state State) game.Decision
}

type factory func(rng *rand.Rand) Agent

var registry = map[string]factory{
	"mimic":  func(*rand.Rand) Agent { return Mimic{} },
	"basic":  func(*rand.Rand) Agent { return Basic{} },
	"random": func(rng *rand.Rand) Agent { return &Random{rng: rng} },
}

// Names lists the registered strategies
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a strategy by name
func New(name string, rng *rand.Rand) (Agent, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, Names())
	}
	return f(rng), nil
}

// Mimic plays the dealer's rule: hit below 17
type Mimic struct{}

func (Mimic) Name() string { return "mimic" }

func (Mimic) Decide(s State) game.Decision {
	if s.PlayerTotal < game.DealerStandsOn {
		return game.Hit
	}
	return game.Stand
}

// Basic is hit/stand basic strategy for a single deck without doubling or
// splitting.
type Basic struct{}

func (Basic) Name() string { return "basic" }

func (Basic) Decide(s State) game.Decision {
	up := s.DealerUpcard.Points()
	total := s.PlayerTotal

	if s.Soft {
		switch {
		case total >= 19:
			return game.Stand
		case total == 18 && up <= 8:
			return game.Stand
		default:
			return game.Hit
		}
	}

	switch {
	case total >= 17:
		return game.Stand
	case total >= 13:
		if up <= 6 {
			return game.Stand
		}
		return game.Hit
	case total == 12:
		if up >= 4 && up <= 6 {
			return game.Stand
		}
		return game.Hit
	default:
		return game.Hit
	}
}

// Random flips a coin below 21 and always stands on 21
type Random struct {
	rng *rand.Rand
}

func (*Random) Name() string { return "random" }

func (r *Random) Decide(s State) game.Decision {
	if s.PlayerTotal >= game.Blackjack || r.rng.IntN(2) == 0 {
		return game.Stand
	}
	return game.Hit
}

// PlayRound plays a whole round of g with agent and settles bet.
func PlayRound(g *game.Game, agent Agent, bet float64) (game.Settlement, error) {
	if err := g.ValidateBet(bet); err != nil {
		return game.Settlement{}, err
	}

	r, err := g.StartRound()
	if err != nil {
		return game.Settlement{}, err
	}

	for r.Phase() == game.PhasePlayerTurn {
		if _, err := g.ApplyPlayerDecision(agent.Decide(StateFromRound(r))); err != nil {
			return game.Settlement{}, err
		}
	}

	if _, err := g.RunDealerTurn(); err != nil {
		return game.Settlement{}, err
	}
	return g.Settle(bet)
}
