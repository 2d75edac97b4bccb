// Package simulator plays many independent seeded sessions with an automated
// strategy and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Rounds   int // Maximum rounds per session
	Workers  int
	Strategy string
	Bet      float64
	Bankroll float64
	Seed     int64
	Logger   *log.Logger
}

// SessionResult summarises one session
type SessionResult struct {
	Index         int
	Seed          int64
	Rounds        int
	FinalBankroll float64
	Broke         bool // Stopped early because the bankroll could not cover the bet
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Sessions []SessionResult
}

// Simulator runs blackjack session simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Validate checks the configuration can run
func (c Config) Validate() error {
	if c.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if _, err := strategy.New(c.Strategy, randutil.New(0)); err != nil {
		return err
	}
	if _, err := game.NewBankroll(c.Bankroll); err != nil {
		return fmt.Errorf("bankroll: %w", err)
	}
	if c.Bet <= 0 || c.Bet > c.Bankroll {
		return fmt.Errorf("%w: bet %.2f with bankroll %.2f", game.ErrInvalidBet, c.Bet, c.Bankroll)
	}
	return nil
}

// Run executes every session and returns merged statistics. Sessions are
// independent, so the result does not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"sessions", s.config.Sessions,
		"rounds", s.config.Rounds,
		"workers", s.config.Workers,
		"strategy", s.config.Strategy,
		"seed", s.config.Seed)

	sessions := make([]SessionResult, s.config.Sessions)
	perSession := make([]*statistics.Statistics, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	var progress sync.Mutex
	done := 0

	for i := range s.config.Sessions {
		g.Go(func() error {
			res, stats, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, res.Seed, err)
			}
			sessions[i] = res
			perSession[i] = stats

			progress.Lock()
			done++
			logger.Debug("Session finished", "session", i, "rounds", res.Rounds,
				"bankroll", res.FinalBankroll, "completed", done)
			progress.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in session order so Values are deterministic
	total := &statistics.Statistics{}
	for _, st := range perSession {
		total.Merge(st)
	}

	if total.Rounds > 0 {
		if err := total.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed: %w", err)
		}
	}

	logger.Info("Simulation complete", "rounds", total.Rounds, "mean", total.Mean())
	return &Result{Stats: total, Sessions: sessions}, nil
}

// playSession plays up to Rounds rounds in a fresh game
func (s *Simulator) playSession(ctx context.Context, index int) (SessionResult, *statistics.Statistics, error) {
	seed := randutil.Derive(s.config.Seed, index)
	res := SessionResult{Index: index, Seed: seed}
	rng := randutil.New(seed)

	collector := NewCollector(seed)
	bus := game.NewEventBus()
	bus.Subscribe(collector)

	g, err := game.NewGame(rng, s.config.Bankroll,
		game.WithEventBus(bus),
		game.WithLogger(s.config.Logger.WithPrefix(fmt.Sprintf("session-%d", index))))
	if err != nil {
		return res, nil, err
	}

	agent, err := strategy.New(s.config.Strategy, rng)
	if err != nil {
		return res, nil, err
	}

	for range s.config.Rounds {
		if err := ctx.Err(); err != nil {
			return res, nil, err
		}
		if g.ValidateBet(s.config.Bet) != nil {
			res.Broke = true
			break
		}
		if _, err := strategy.PlayRound(g, agent, s.config.Bet); err != nil {
			return res, nil, err
		}
		res.Rounds++
	}

	res.FinalBankroll = g.CurrentBankroll()
	return res, collector.Stats(), nil
}

// Collector turns settled-round events into statistics
type Collector struct {
	seed  int64
	stats statistics.Statistics
}

// NewCollector creates a collector tagging results with a session seed
func NewCollector(seed int64) *Collector {
	return &Collector{seed: seed}
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.GameEvent) {
	if e, ok := event.(game.RoundSettledEvent); ok {
		c.stats.Add(statistics.ResultFromSettlement(e.Settlement, c.seed))
	}
}

// Stats returns the collected statistics
func (c *Collector) Stats() *statistics.Statistics {
	return &c.stats
}
