package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `kong:"short='c',default='blackjack.hcl',help='HCL config file (optional)'"`
	LogLevel string `kong:"name='log-level',help='Log level: debug, info, warn, error (overrides config)'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many sessions with an automated strategy"`
	Serve    ServeCmd         `cmd:"" help:"Serve blackjack sessions over WebSocket"`
}

// load reads the config file and applies global overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
