package game

// Outcome is the result of a settled round from the player's point of view
type Outcome int

const (
	PlayerWin Outcome = iota + 1
	DealerWin
	Tie
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player_win"
	case DealerWin:
		return "dealer_win"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// Delta returns the bankroll change for a bet. A tie leaves the bankroll
// untouched: there is no separate push payout.
func (o Outcome) Delta(bet float64) float64 {
	switch o {
	case PlayerWin:
		return bet
	case DealerWin:
		return -bet
	default:
		return 0
	}
}

// DetermineOutcome decides the winner. A player bust loses regardless of the
// dealer's hand; otherwise a dealer bust wins for the player; otherwise the
// higher total wins and equal totals tie.
func DetermineOutcome(playerBusted, dealerBusted bool, playerTotal, dealerTotal int) Outcome {
	switch {
	case playerBusted:
		return DealerWin
	case dealerBusted:
		return PlayerWin
	case playerTotal > dealerTotal:
		return PlayerWin
	case playerTotal < dealerTotal:
		return DealerWin
	default:
		return Tie
	}
}
