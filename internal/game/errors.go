package game

import (
	"errors"

	"github.com/lox/blackjack/internal/deck"
)

var (
	// ErrDeckExhausted is re-exported so drivers only need this package.
	ErrDeckExhausted = deck.ErrDeckExhausted

	ErrInvalidDecision = errors.New("invalid decision")
	ErrInvalidBet      = errors.New("invalid bet")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrWrongPhase      = errors.New("operation not allowed in current phase")
	ErrRoundInProgress = errors.New("round in progress")
	ErrBankrupt        = errors.New("bankroll exhausted")
	ErrNotBroke        = errors.New("rebuy only allowed when bankroll is exhausted")
)
