package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive session
type PlayCmd struct {
	Name      string  `kong:"help='Player name (default from config)'"`
	Bankroll  float64 `kong:"help='Suggested starting bankroll (default from config)'"`
	LogFile   string  `kong:"name='log-file',help='Log file (default from config)'"`
	NoColor   bool    `kong:"name='no-color',help='Disable colored output'"`
	AltScreen bool    `kong:"name='alt-screen',help='Use the alternate screen buffer'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Name != "" {
		cfg.Player.Name = c.Name
	}
	if c.Bankroll != 0 {
		cfg.Player.Bankroll = c.Bankroll
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if err := cfg.ValidatePlay(); err != nil {
		return err
	}

	logger, closeLog, err := shared.SetupFileLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	seed := randutil.Seed(g.Seed)
	logger.Info("Starting interactive session", "seed", seed, "config", g.Config)

	tui.SetColor(!c.NoColor)

	model := tui.New(tui.Config{
		Name:     cfg.Player.Name,
		Bankroll: cfg.Player.Bankroll,
		RNG:      randutil.New(seed),
		Logger:   logger,
	})

	var opts []tea.ProgramOption
	if c.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tui.Run(model, opts...)
}
