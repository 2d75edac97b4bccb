package simulator

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func testConfig() Config {
	return Config{
		Sessions: 8,
		Rounds:   50,
		Workers:  4,
		Strategy: "basic",
		Bet:      10,
		Bankroll: 1000,
		Seed:     12345,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 0
	cfg.Logger = nil

	sim := New(cfg)
	require.NotNil(t, sim)
	assert.Positive(t, sim.config.Workers)
	assert.NotNil(t, sim.config.Logger)
	assert.Equal(t, 8, sim.config.Sessions)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, testConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }},
		{"no rounds", func(c *Config) { c.Rounds = -1 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "martingale" }},
		{"zero bankroll", func(c *Config) { c.Bankroll = 0 }},
		{"zero bet", func(c *Config) { c.Bet = 0 }},
		{"bet above bankroll", func(c *Config) { c.Bet = 2000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	res, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Sessions, 8)
	rounds := 0
	for i, s := range res.Sessions {
		assert.Equal(t, i, s.Index)
		assert.LessOrEqual(t, s.Rounds, 50)
		if !s.Broke {
			assert.Equal(t, 50, s.Rounds)
		}
		rounds += s.Rounds
	}

	assert.Equal(t, rounds, res.Stats.Rounds)
	require.NoError(t, res.Stats.Validate())
	assert.InDelta(t, 1.0, res.Stats.WinRate()+res.Stats.LossRate()+res.Stats.TieRate(), 1e-9)

	// Every round settles for exactly one bet either way or nothing.
	for _, v := range res.Stats.Values {
		assert.Contains(t, []float64{-1, 0, 1}, v)
	}

	net := 0.0
	for _, s := range res.Sessions {
		net += s.FinalBankroll - 1000
	}
	assert.InDelta(t, net, res.Stats.TotalNet, 1e-9)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	one := testConfig()
	one.Workers = 1
	many := testConfig()
	many.Workers = 8

	a, err := New(one).Run(context.Background())
	require.NoError(t, err)
	b, err := New(many).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Sessions, b.Sessions)
	assert.Equal(t, a.Stats.Values, b.Stats.Values)
}

func TestRunStopsWhenBroke(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions = 4
	cfg.Rounds = 10_000
	cfg.Bankroll = 20
	cfg.Bet = 10
	cfg.Strategy = "random"

	res, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	for _, s := range res.Sessions {
		if s.Broke {
			assert.Less(t, s.FinalBankroll, cfg.Bet)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectorIgnoresOtherEvents(t *testing.T) {
	c := NewCollector(3)
	c.OnEvent(game.RebuyEvent{Amount: 10})
	c.OnEvent(game.RoundSettledEvent{Settlement: game.Settlement{Outcome: game.Tie, Bet: 5}})

	assert.Equal(t, 1, c.Stats().Rounds)
	assert.Equal(t, 1, c.Stats().Ties)
}

func TestRunInfoLoggingIsPerSimulation(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Sessions = 2
	cfg.Rounds = 50
	cfg.Logger = log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	res, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, res.Stats.Rounds)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2, "only start and completion are logged at info: %v", lines)
	assert.NotContains(t, buf.String(), "Round started")
	assert.NotContains(t, buf.String(), "Round settled")
}
