package game

import (
	"fmt"
	"math"
)

// Bankroll tracks the player's money across rounds. It is only changed by
// settling a round or by a rebuy.
type Bankroll struct {
	balance float64
}

// NewBankroll creates a bankroll with a positive starting balance
func NewBankroll(initial float64) (*Bankroll, error) {
	if !validAmount(initial) {
		return nil, fmt.Errorf("%w: starting bankroll must be positive, got %v", ErrInvalidAmount, initial)
	}
	return &Bankroll{balance: initial}, nil
}

// Balance returns the current money
func (b *Bankroll) Balance() float64 {
	return b.balance
}

// IsBroke reports whether the bankroll has been driven to zero or below
func (b *Bankroll) IsBroke() bool {
	return b.balance <= 0
}

// ValidateBet checks that bet is positive and covered by the balance
func (b *Bankroll) ValidateBet(bet float64) error {
	if !validAmount(bet) {
		return fmt.Errorf("%w: bet must be positive, got %v", ErrInvalidBet, bet)
	}
	if bet > b.balance {
		return fmt.Errorf("%w: bet %.2f exceeds bankroll %.2f", ErrInvalidBet, bet, b.balance)
	}
	return nil
}

// Rebuy replaces an exhausted bankroll with a fresh buy-in
func (b *Bankroll) Rebuy(amount float64) error {
	if !b.IsBroke() {
		return ErrNotBroke
	}
	if !validAmount(amount) {
		return fmt.Errorf("%w: buy-in must be positive, got %v", ErrInvalidAmount, amount)
	}
	b.balance = amount
	return nil
}

func (b *Bankroll) apply(outcome Outcome, bet float64) float64 {
	delta := outcome.Delta(bet)
	b.balance += delta
	return delta
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
