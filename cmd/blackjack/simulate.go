package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
)

// SimulateCmd runs automated sessions and reports the results
type SimulateCmd struct {
	Sessions int     `kong:"help='Number of independent sessions (default from config)'"`
	Rounds   int     `kong:"help='Maximum rounds per session (default from config)'"`
	Workers  int     `kong:"help='Concurrent sessions, 0 for one per CPU (default from config)'"`
	Strategy string  `kong:"help='Player strategy: basic, mimic, random (default from config)'"`
	Bet      float64 `kong:"help='Flat bet per round (default from config)'"`
	Bankroll float64 `kong:"help='Starting bankroll per session (default from config)'"`
	Output   string  `kong:"short='o',help='Write a JSON summary to this file'"`
}

// Summary is the JSON written by --output
type Summary struct {
	Seed         int64   `json:"seed"`
	Strategy     string  `json:"strategy"`
	Sessions     int     `json:"sessions"`
	Rounds       int     `json:"rounds"`
	Broke        int     `json:"broke"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"stdDev"`
	CILow        float64 `json:"ciLow"`
	CIHigh       float64 `json:"ciHigh"`
	WinRate      float64 `json:"winRate"`
	LossRate     float64 `json:"lossRate"`
	TieRate      float64 `json:"tieRate"`
	BustRate     float64 `json:"bustRate"`
	Blackjacks   float64 `json:"blackjackRate"`
	TotalWagered float64 `json:"totalWagered"`
	TotalNet     float64 `json:"totalNet"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	sim := cfg.Simulation
	if c.Sessions != 0 {
		sim.Sessions = c.Sessions
	}
	if c.Rounds != 0 {
		sim.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		sim.Workers = c.Workers
	}
	if c.Strategy != "" {
		sim.Strategy = c.Strategy
	}
	if c.Bet != 0 {
		sim.Bet = c.Bet
	}
	cfg.Simulation = sim
	if c.Bankroll != 0 {
		cfg.Player.Bankroll = c.Bankroll
	}
	if err := cfg.ValidateSimulate(); err != nil {
		return err
	}

	logger, err := shared.SetupLogger(cfg.Log.Level, os.Stderr)
	if err != nil {
		return err
	}
	ctx := shared.SetupSignalHandler(logger)

	seed := randutil.Seed(g.Seed)
	fmt.Printf("Simulating %d sessions of up to %d rounds with %s strategy (seed: %d)\n",
		sim.Sessions, sim.Rounds, sim.Strategy, seed)

	start := time.Now()
	res, err := simulator.New(simulator.Config{
		Sessions: sim.Sessions,
		Rounds:   sim.Rounds,
		Workers:  sim.Workers,
		Strategy: sim.Strategy,
		Bet:      sim.Bet,
		Bankroll: cfg.Player.Bankroll,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	summary := summarize(res, seed, sim.Strategy)
	printSummary(summary, res.Stats, time.Since(start))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, summary); err != nil {
			return err
		}
		fmt.Printf("Summary written to %s\n", c.Output)
	}
	return nil
}

func summarize(res *simulator.Result, seed int64, strategy string) Summary {
	st := res.Stats
	low, high := st.ConfidenceInterval95()
	broke := 0
	for _, s := range res.Sessions {
		if s.Broke {
			broke++
		}
	}
	return Summary{
		Seed:         seed,
		Strategy:     strategy,
		Sessions:     len(res.Sessions),
		Rounds:       st.Rounds,
		Broke:        broke,
		Mean:         st.Mean(),
		StdDev:       st.StdDev(),
		CILow:        low,
		CIHigh:       high,
		WinRate:      st.WinRate(),
		LossRate:     st.LossRate(),
		TieRate:      st.TieRate(),
		BustRate:     st.BustRate(),
		Blackjacks:   st.BlackjackRate(),
		TotalWagered: st.TotalWagered,
		TotalNet:     st.TotalNet,
	}
}

func printSummary(s Summary, st *statistics.Statistics, elapsed time.Duration) {
	fmt.Printf("\n=== %d ROUNDS COMPLETED in %s ===\n", s.Rounds, elapsed.Round(time.Millisecond))
	fmt.Printf("Results: %+.4f bets/round ± %.4f SD\n", s.Mean, s.StdDev)
	fmt.Printf("95%% CI: [%+.4f, %+.4f] bets/round\n", s.CILow, s.CIHigh)
	fmt.Printf("Win/Loss/Tie: %.1f%% / %.1f%% / %.1f%%\n", s.WinRate*100, s.LossRate*100, s.TieRate*100)
	fmt.Printf("Player busts: %.1f%%  Blackjacks: %.1f%%  Dealer busts: %d\n",
		s.BustRate*100, s.Blackjacks*100, st.DealerBusts)
	fmt.Printf("Wagered: $%.2f  Net: $%.2f  Sessions broke: %d/%d\n", s.TotalWagered, s.TotalNet, s.Broke, s.Sessions)
}
