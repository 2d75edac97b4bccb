// Package statistics aggregates per-round results from simulated sessions.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult represents the outcome of a single settled round
type RoundResult struct {
	Outcome         game.Outcome
	Bet             float64
	Net             float64 // Bankroll change for the round
	PlayerTotal     int
	DealerTotal     int
	PlayerBlackjack bool
	PlayerBusted    bool
	DealerBusted    bool
	Seed            int64 // Session seed (for replay)
}

// ResultFromSettlement converts a settlement into a round result
func ResultFromSettlement(s game.Settlement, seed int64) RoundResult {
	return RoundResult{
		Outcome:         s.Outcome,
		Bet:             s.Bet,
		Net:             s.Delta,
		PlayerTotal:     s.PlayerTotal,
		DealerTotal:     s.DealerTotal,
		PlayerBlackjack: s.PlayerBlackjack,
		PlayerBusted:    s.PlayerBusted,
		DealerBusted:    s.DealerBusted,
		Seed:            seed,
	}
}

// Statistics tracks simulation results. Net values are in units of the bet
// (net / bet) so sessions with different stakes compare directly.
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	Wins   int
	Losses int
	Ties   int

	PlayerBlackjacks int
	PlayerBusts      int
	DealerBusts      int

	TotalWagered float64
	TotalNet     float64
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(r RoundResult) {
	units := 0.0
	if r.Bet > 0 {
		units = r.Net / r.Bet
	}

	s.Rounds++
	s.Sum += units
	s.Sum2 += units * units
	s.Values = append(s.Values, units)

	switch r.Outcome {
	case game.PlayerWin:
		s.Wins++
	case game.DealerWin:
		s.Losses++
	case game.Tie:
		s.Ties++
	}

	if r.PlayerBlackjack {
		s.PlayerBlackjacks++
	}
	if r.PlayerBusted {
		s.PlayerBusts++
	}
	if r.DealerBusted {
		s.DealerBusts++
	}

	s.TotalWagered += r.Bet
	s.TotalNet += r.Net
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.PlayerBlackjacks += other.PlayerBlackjacks
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.TotalWagered += other.TotalWagered
	s.TotalNet += other.TotalNet
}

// Mean returns the average result in bets per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
	if v < 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// rate returns n as a fraction of rounds played
func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

func (s *Statistics) WinRate() float64       { return s.rate(s.Wins) }
func (s *Statistics) LossRate() float64      { return s.rate(s.Losses) }
func (s *Statistics) TieRate() float64       { return s.rate(s.Ties) }
func (s *Statistics) BlackjackRate() float64 { return s.rate(s.PlayerBlackjacks) }
func (s *Statistics) BustRate() float64      { return s.rate(s.PlayerBusts) }

// ReturnOnWagered returns total net as a fraction of total wagered
func (s *Statistics) ReturnOnWagered() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return s.TotalNet / s.TotalWagered
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if outcomes := s.Wins + s.Losses + s.Ties; outcomes != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match rounds count (%d)", outcomes, s.Rounds)
	}

	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}

	return nil
}
