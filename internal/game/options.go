package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

// Option configures a Game or Round during creation.
type Option func(*config)

// DeckSource builds the deck for a new round. The returned deck is shuffled
// by the caller.
type DeckSource func(rng *rand.Rand) *deck.Deck

type config struct {
	clock  quartz.Clock
	bus    EventBus
	logger *log.Logger
	decks  DeckSource
	ids    func() string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		clock:  quartz.NewReal(),
		bus:    nopBus{},
		logger: log.New(io.Discard),
		decks:  deck.New,
		ids:    newRoundID,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newRoundID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithEventBus publishes round events to bus.
func WithEventBus(bus EventBus) Option {
	return func(c *config) {
		c.bus = bus
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDeckSource overrides how each round's deck is built.
// Tests use it to inject stacked decks.
func WithDeckSource(source DeckSource) Option {
	return func(c *config) {
		c.decks = source
	}
}

// WithRoundIDs overrides round ID generation.
func WithRoundIDs(next func() string) Option {
	return func(c *config) {
		c.ids = next
	}
}
