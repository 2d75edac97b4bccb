package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round lifecycle events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypePlayerAction EventType = "player_action"
	EventTypeDealerTurn   EventType = "dealer_turn"
	EventTypeRoundSettled EventType = "round_settled"
	EventTypeRoundAborted EventType = "round_aborted"
	EventTypeRebuy        EventType = "rebuy"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
