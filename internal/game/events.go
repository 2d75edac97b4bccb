package game

import (
	"slices"
	"sync"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once the initial four cards are dealt
type RoundStartEvent struct {
	RoundID         string
	PlayerCards     []deck.Card
	PlayerTotal     int
	DealerUpcard    deck.Card
	PlayerBlackjack bool
	timestamp       time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published for every accepted hit or stand
type PlayerActionEvent struct {
	RoundID   string
	Decision  Decision
	Card      *deck.Card // nil on stand
	Total     int
	Busted    bool
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// DealerTurnEvent is published when the dealer stops drawing
type DealerTurnEvent struct {
	RoundID     string
	DealerCards []deck.Card
	Total       int
	Busted      bool
	Drew        int
	timestamp   time.Time
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }
func (e DealerTurnEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published when the bet is applied to the bankroll
type RoundSettledEvent struct {
	Settlement Settlement
	timestamp  time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// RoundAbortedEvent is published when a round dies on an internal error
type RoundAbortedEvent struct {
	RoundID   string
	Phase     Phase
	Err       error
	timestamp time.Time
}

func (e RoundAbortedEvent) EventType() EventType { return EventTypeRoundAborted }
func (e RoundAbortedEvent) Timestamp() time.Time { return e.timestamp }

// RebuyEvent is published when an exhausted bankroll is refilled
type RebuyEvent struct {
	Amount    float64
	timestamp time.Time
}

func (e RebuyEvent) EventType() EventType { return EventTypeRebuy }
func (e RebuyEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers are called
// in subscription order on the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Only comparable
// subscribers can be removed; function adapters cannot.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = slices.Delete(bus.subscribers, i, i+1)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

type nopBus struct{}

func (nopBus) Subscribe(EventSubscriber)   {}
func (nopBus) Unsubscribe(EventSubscriber) {}
func (nopBus) Publish(GameEvent)           {}
