package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/simulator"
)

func TestGlobalsLoad(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), LogLevel: "debug"}
	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "basic", cfg.Simulation.Strategy)

	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("log {"), 0o644))
	_, err = (&Globals{Config: path}).load()
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	res, err := simulator.New(simulator.Config{
		Sessions: 3,
		Rounds:   20,
		Workers:  2,
		Strategy: "mimic",
		Bet:      5,
		Bankroll: 100,
		Seed:     99,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}).Run(context.Background())
	require.NoError(t, err)

	s := summarize(res, 99, "mimic")
	assert.Equal(t, int64(99), s.Seed)
	assert.Equal(t, 3, s.Sessions)
	assert.Equal(t, res.Stats.Rounds, s.Rounds)
	assert.InDelta(t, 1.0, s.WinRate+s.LossRate+s.TieRate, 1e-9)
	assert.LessOrEqual(t, s.CILow, s.Mean)
	assert.GreaterOrEqual(t, s.CIHigh, s.Mean)
	assert.Equal(t, res.Stats.TotalNet, s.TotalNet)
}
