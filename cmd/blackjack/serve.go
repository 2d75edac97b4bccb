package main

import (
	"os"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr        string  `kong:"help='Listen address, host:port (default from config)'"`
	IdleTimeout string  `kong:"name='idle-timeout',help='Close connections idle this long (default from config)'"`
	Bankroll    float64 `kong:"help='Bankroll for players that do not send one (default from config)'"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.IdleTimeout != "" {
		cfg.Server.IdleTimeout = c.IdleTimeout
	}
	if c.Bankroll != 0 {
		cfg.Player.Bankroll = c.Bankroll
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger, err := shared.SetupLogger(cfg.Log.Level, os.Stderr)
	if err != nil {
		return err
	}

	seed := randutil.Seed(g.Seed)
	logger.Info("Starting blackjack server", "addr", addr, "seed", seed, "idle_timeout", cfg.IdleTimeout())

	srv := server.NewServer(server.Config{
		Addr:            addr,
		IdleTimeout:     cfg.IdleTimeout(),
		DefaultBankroll: cfg.Player.Bankroll,
		Seed:            seed,
		Clock:           quartz.NewReal(),
		Logger:          logger,
	})

	ctx := shared.SetupSignalHandler(logger)
	return srv.Start(ctx)
}
