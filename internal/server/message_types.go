package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeHello    MessageType = "hello"
	MessageTypeBet      MessageType = "bet"
	MessageTypeDecision MessageType = "decision"
	MessageTypeRebuy    MessageType = "rebuy"

	// Server to client messages
	MessageTypeWelcome       MessageType = "welcome"
	MessageTypeRoundStarted  MessageType = "round_started"
	MessageTypePlayerUpdate  MessageType = "player_update"
	MessageTypeRoundResult   MessageType = "round_result"
	MessageTypeRebuyAccepted MessageType = "rebuy_accepted"
	MessageTypeError         MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData
const (
	ErrorCodeInvalidBet      = "invalid_bet"
	ErrorCodeInvalidDecision = "invalid_decision"
	ErrorCodeWrongPhase      = "wrong_phase"
	ErrorCodeInvalidMessage  = "invalid_message"
	ErrorCodeInternal        = "internal_error"
)
