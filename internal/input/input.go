// Package input turns raw text typed by a player into the validated values
// the game engine accepts.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// ErrInvalidInput is returned for text that cannot be parsed
var ErrInvalidInput = errors.New("invalid input")

// ParseAmount parses a positive money amount such as "50", "$50" or "$ 50.50".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: enter a positive amount (ex. $50 or 50.50), got %q", ErrInvalidInput, s)
	}
	return v, nil
}

// ParseDecision accepts H/S or hit/stand in any case.
func ParseDecision(s string) (game.Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hit":
		return game.Hit, nil
	case "s", "stand":
		return game.Stand, nil
	}
	return 0, fmt.Errorf("%w: enter H or S, got %q", game.ErrInvalidDecision, s)
}

// ParseYesNo accepts yes/no (or y/n) in any case.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("%w: enter yes or no, got %q", ErrInvalidInput, s)
}

// FormatMoney renders an amount with two decimals, e.g. "$12.50". Negative
// balances render as "-$5.00".
func FormatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}
