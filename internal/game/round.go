package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/lox/blackjack/internal/deck"
)

// Phase is the state of a round
type Phase int

const (
	PhaseDealing Phase = iota
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettled
	PhaseAborted
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseSettled:
		return "settled"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Done reports whether the round can no longer change
func (p Phase) Done() bool {
	return p == PhaseSettled || p == PhaseAborted
}

// PlayerTurnResult reports the effect of one decision
type PlayerTurnResult struct {
	Decision Decision
	Card     *deck.Card // card drawn on a hit
	Total    int
	Busted   bool
	TurnOver bool
}

// DealerTurnResult reports the dealer's finished hand
type DealerTurnResult struct {
	Cards  []deck.Card
	Total  int
	Busted bool
	Drew   int // cards drawn after the deal
}

// Settlement is the outcome of a round applied to a bankroll
type Settlement struct {
	RoundID         string
	Outcome         Outcome
	Bet             float64
	Delta           float64
	PlayerTotal     int
	DealerTotal     int
	PlayerBusted    bool
	DealerBusted    bool
	PlayerBlackjack bool
	Bankroll        float64
}

// Round drives one hand of blackjack: DEALING -> PLAYER_TURN -> DEALER_TURN -> SETTLED.
// The round owns its deck and both hands; cards move from the deck into a hand
// and are never copied back.
type Round struct {
	id     string
	deck   *deck.Deck
	player *Hand
	dealer *Hand
	phase  Phase
	cfg    *config

	playerBusted    bool
	dealerBusted    bool
	playerBlackjack bool
	dealerPlayed    bool
	settlement      *Settlement
}

// NewRound deals a round from d. The deck is used as-is, so shuffle it first.
// The player receives two cards, then the dealer receives two. A natural 21
// skips the player turn.
func NewRound(d *deck.Deck, opts ...Option) (*Round, error) {
	return newRound(d, newConfig(opts))
}

func newRound(d *deck.Deck, cfg *config) (*Round, error) {
	if d == nil {
		panic("deck is required for round creation")
	}

	r := &Round{
		id:     cfg.ids(),
		deck:   d,
		player: NewHand(),
		dealer: NewHand(),
		phase:  PhaseDealing,
		cfg:    cfg,
	}

	for _, h := range []*Hand{r.player, r.player, r.dealer, r.dealer} {
		if err := r.drawInto(h); err != nil {
			return nil, err
		}
	}

	r.phase = PhasePlayerTurn
	if r.player.IsBlackjack() {
		r.playerBlackjack = true
		r.phase = PhaseDealerTurn
	}

	cfg.logger.Debug("Round dealt",
		"round", r.id,
		"player", r.player.String(),
		"upcard", r.DealerUpcard().String(),
		"blackjack", r.playerBlackjack)

	cfg.bus.Publish(RoundStartEvent{
		RoundID:         r.id,
		PlayerCards:     r.player.Cards(),
		PlayerTotal:     r.player.Value(),
		DealerUpcard:    r.DealerUpcard(),
		PlayerBlackjack: r.playerBlackjack,
		timestamp:       cfg.clock.Now(),
	})

	return r, nil
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// Phase returns the current phase
func (r *Round) Phase() Phase { return r.phase }

// PlayerHand returns a copy of the player's hand
func (r *Round) PlayerHand() *Hand { return NewHand(r.player.cards...) }

// DealerHand returns a copy of the dealer's hand. Drivers should only show
// the upcard until the dealer turn has run.
func (r *Round) DealerHand() *Hand { return NewHand(r.dealer.cards...) }

// DealerUpcard returns the dealer's first card
func (r *Round) DealerUpcard() deck.Card {
	if len(r.dealer.cards) == 0 {
		return deck.Card{}
	}
	return r.dealer.cards[0]
}

// PlayerBlackjack reports a natural 21 on the deal
func (r *Round) PlayerBlackjack() bool { return r.playerBlackjack }

// PlayerBusted reports whether the player went over 21
func (r *Round) PlayerBusted() bool { return r.playerBusted }

// DealerBusted reports whether the dealer went over 21
func (r *Round) DealerBusted() bool { return r.dealerBusted }

// CardsRemaining returns the number of undealt cards
func (r *Round) CardsRemaining() int { return r.deck.CardsRemaining() }

// Settlement returns the settlement once the round is settled
func (r *Round) Settlement() (Settlement, bool) {
	if r.settlement == nil {
		return Settlement{}, false
	}
	return *r.settlement, true
}

// ApplyPlayerDecision applies a hit or stand. A hit that takes the player
// over 21 ends the turn as a bust. Invalid decisions are rejected without
// changing the round.
func (r *Round) ApplyPlayerDecision(d Decision) (PlayerTurnResult, error) {
	if r.phase != PhasePlayerTurn {
		return PlayerTurnResult{}, fmt.Errorf("%w: decision in %s", ErrWrongPhase, r.phase)
	}
	if !d.Valid() {
		return PlayerTurnResult{}, fmt.Errorf("%w: %d", ErrInvalidDecision, int(d))
	}

	res := PlayerTurnResult{Decision: d}
	switch d {
	case Hit:
		if err := r.drawInto(r.player); err != nil {
			return PlayerTurnResult{}, err
		}
		card := r.player.cards[len(r.player.cards)-1]
		res.Card = &card
		if r.player.IsBust() {
			r.playerBusted = true
			r.phase = PhaseDealerTurn
		}
	case Stand:
		r.phase = PhaseDealerTurn
	}

	res.Total = r.player.Value()
	res.Busted = r.playerBusted
	res.TurnOver = r.phase == PhaseDealerTurn

	r.cfg.logger.Debug("Player decision",
		"round", r.id,
		"decision", d,
		"total", res.Total,
		"busted", res.Busted)

	r.cfg.bus.Publish(PlayerActionEvent{
		RoundID:   r.id,
		Decision:  d,
		Card:      res.Card,
		Total:     res.Total,
		Busted:    res.Busted,
		timestamp: r.cfg.clock.Now(),
	})

	return res, nil
}

// RunDealerTurn plays the dealer's fixed strategy: draw while under 17. If
// the player has already busted the dealer does not draw at all.
func (r *Round) RunDealerTurn() (DealerTurnResult, error) {
	if r.phase != PhaseDealerTurn || r.dealerPlayed {
		return DealerTurnResult{}, fmt.Errorf("%w: dealer turn in %s", ErrWrongPhase, r.phase)
	}

	drew := 0
	if !r.playerBusted {
		for r.dealer.Value() < DealerStandsOn {
			if err := r.drawInto(r.dealer); err != nil {
				return DealerTurnResult{}, err
			}
			drew++
		}
		r.dealerBusted = r.dealer.IsBust()
	}
	r.dealerPlayed = true

	res := DealerTurnResult{
		Cards:  r.dealer.Cards(),
		Total:  r.dealer.Value(),
		Busted: r.dealerBusted,
		Drew:   drew,
	}

	r.cfg.logger.Debug("Dealer turn",
		"round", r.id,
		"dealer", r.dealer.String(),
		"busted", res.Busted)

	r.cfg.bus.Publish(DealerTurnEvent{
		RoundID:     r.id,
		DealerCards: res.Cards,
		Total:       res.Total,
		Busted:      res.Busted,
		Drew:        drew,
		timestamp:   r.cfg.clock.Now(),
	})

	return res, nil
}

// Settle determines the outcome and applies bet to bankroll. The bet is
// checked against the bankroll first; a rejected bet leaves the round
// waiting for settlement so the caller can retry.
func (r *Round) Settle(bankroll *Bankroll, bet float64) (Settlement, error) {
	if r.phase != PhaseDealerTurn || !r.dealerPlayed {
		return Settlement{}, fmt.Errorf("%w: settle in %s", ErrWrongPhase, r.phase)
	}
	if bankroll == nil {
		return Settlement{}, fmt.Errorf("%w: no bankroll", ErrInvalidBet)
	}
	if err := bankroll.ValidateBet(bet); err != nil {
		return Settlement{}, err
	}

	playerTotal := r.player.Value()
	dealerTotal := r.dealer.Value()
	outcome := DetermineOutcome(r.playerBusted, r.dealerBusted, playerTotal, dealerTotal)
	delta := bankroll.apply(outcome, bet)

	s := Settlement{
		RoundID:         r.id,
		Outcome:         outcome,
		Bet:             bet,
		Delta:           delta,
		PlayerTotal:     playerTotal,
		DealerTotal:     dealerTotal,
		PlayerBusted:    r.playerBusted,
		DealerBusted:    r.dealerBusted,
		PlayerBlackjack: r.playerBlackjack,
		Bankroll:        bankroll.Balance(),
	}
	r.settlement = &s
	r.phase = PhaseSettled

	if r.cfg.logger.GetLevel() <= log.DebugLevel {
		r.cfg.logger.Debug("Round settled", "round", r.id, "state", r.Dump())
	}

	r.cfg.bus.Publish(RoundSettledEvent{
		Settlement: s,
		timestamp:  r.cfg.clock.Now(),
	})

	return s, nil
}

// Dump renders the round state for debug logs
func (r *Round) Dump() string {
	return litter.Sdump(struct {
		ID           string
		Phase        string
		Player       []string
		Dealer       []string
		PlayerBusted bool
		DealerBusted bool
		Blackjack    bool
		Remaining    int
	}{
		ID:           r.id,
		Phase:        r.phase.String(),
		Player:       cardStrings(r.player.cards),
		Dealer:       cardStrings(r.dealer.cards),
		PlayerBusted: r.playerBusted,
		DealerBusted: r.dealerBusted,
		Blackjack:    r.playerBlackjack,
		Remaining:    r.deck.CardsRemaining(),
	})
}

func (r *Round) drawInto(h *Hand) error {
	card, err := r.deck.Draw()
	if err != nil {
		prev := r.phase
		r.phase = PhaseAborted
		err = fmt.Errorf("round %s: drawing in %s: %w", r.id, prev, err)
		r.cfg.logger.Error("Round aborted", "round", r.id, "error", err)
		r.cfg.bus.Publish(RoundAbortedEvent{
			RoundID:   r.id,
			Phase:     prev,
			Err:       err,
			timestamp: r.cfg.clock.Now(),
		})
		return err
	}
	h.Add(card)
	return nil
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
