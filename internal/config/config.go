// Package config loads the optional HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/strategy"
)

// DefaultFile is the config file read when --config is not given
const DefaultFile = "blackjack.hcl"

// Config represents the complete configuration
type Config struct {
	Player     PlayerSettings     `hcl:"player,block"`
	Log        LogSettings        `hcl:"log,block"`
	Server     ServerSettings     `hcl:"server,block"`
	Simulation SimulationSettings `hcl:"simulation,block"`
}

// PlayerSettings are defaults for interactive play
type PlayerSettings struct {
	Name     string  `hcl:"name,optional"`
	Bankroll float64 `hcl:"bankroll,optional"`
}

// LogSettings control the root logger
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// ServerSettings contains websocket server configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// SimulationSettings are defaults for the simulate command
type SimulationSettings struct {
	Sessions int     `hcl:"sessions,optional"`
	Rounds   int     `hcl:"rounds,optional"`
	Workers  int     `hcl:"workers,optional"`
	Strategy string  `hcl:"strategy,optional"`
	Bet      float64 `hcl:"bet,optional"`
}

// file mirrors Config with every block optional
type file struct {
	Player     *PlayerSettings     `hcl:"player,block"`
	Log        *LogSettings        `hcl:"log,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Player: PlayerSettings{
			Name:     "Player",
			Bankroll: 100,
		},
		Log: LogSettings{
			Level: "info",
			File:  "blackjack.log",
		},
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			IdleTimeout: "5m",
		},
		Simulation: SimulationSettings{
			Sessions: 100,
			Rounds:   1000,
			Workers:  0,
			Strategy: "basic",
			Bet:      10,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values absent from the file keep their defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.merge(raw)
	return cfg, nil
}

// merge applies non-zero values from the file over the defaults
func (c *Config) merge(raw file) {
	if p := raw.Player; p != nil {
		if p.Name != "" {
			c.Player.Name = p.Name
		}
		if p.Bankroll != 0 {
			c.Player.Bankroll = p.Bankroll
		}
	}

	if l := raw.Log; l != nil {
		if l.Level != "" {
			c.Log.Level = l.Level
		}
		if l.File != "" {
			c.Log.File = l.File
		}
	}

	if s := raw.Server; s != nil {
		if s.Address != "" {
			c.Server.Address = s.Address
		}
		if s.Port != 0 {
			c.Server.Port = s.Port
		}
		if s.IdleTimeout != "" {
			c.Server.IdleTimeout = s.IdleTimeout
		}
	}

	if s := raw.Simulation; s != nil {
		if s.Sessions != 0 {
			c.Simulation.Sessions = s.Sessions
		}
		if s.Rounds != 0 {
			c.Simulation.Rounds = s.Rounds
		}
		if s.Workers != 0 {
			c.Simulation.Workers = s.Workers
		}
		if s.Strategy != "" {
			c.Simulation.Strategy = s.Strategy
		}
		if s.Bet != 0 {
			c.Simulation.Bet = s.Bet
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return errors.Join(c.validatePlayer(), c.validateLog(), c.validateServer(), c.validateSimulation())
}

// ValidatePlay checks the blocks used by interactive play
func (c *Config) ValidatePlay() error {
	return errors.Join(c.validatePlayer(), c.validateLog())
}

// ValidateServe checks the blocks used by the websocket server
func (c *Config) ValidateServe() error {
	return errors.Join(c.validatePlayer(), c.validateLog(), c.validateServer())
}

// ValidateSimulate checks the blocks used by the simulator
func (c *Config) ValidateSimulate() error {
	return errors.Join(c.validatePlayer(), c.validateLog(), c.validateSimulation())
}

func (c *Config) validatePlayer() error {
	if c.Player.Bankroll <= 0 {
		return fmt.Errorf("player: bankroll must be positive, got %.2f", c.Player.Bankroll)
	}
	return nil
}

func (c *Config) validateLog() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}
	if d, err := time.ParseDuration(c.Server.IdleTimeout); err != nil {
		return fmt.Errorf("server: invalid idle_timeout: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("server: idle_timeout must be positive, got %s", d)
	}
	return nil
}

func (c *Config) validateSimulation() error {
	sim := c.Simulation
	if sim.Sessions <= 0 {
		return fmt.Errorf("simulation: sessions must be positive, got %d", sim.Sessions)
	}
	if sim.Rounds <= 0 {
		return fmt.Errorf("simulation: rounds must be positive, got %d", sim.Rounds)
	}
	if sim.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative, got %d", sim.Workers)
	}
	if sim.Bet <= 0 {
		return fmt.Errorf("simulation: bet must be positive, got %.2f", sim.Bet)
	}
	if _, err := strategy.New(sim.Strategy, nil); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	return nil
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns the parsed server idle timeout
func (c *Config) IdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}
