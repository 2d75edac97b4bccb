package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type HelloData struct {
	Name     string  `json:"name"`
	Bankroll float64 `json:"bankroll,omitempty"`
}

type BetData struct {
	Amount float64 `json:"amount"`
}

type DecisionData struct {
	Action string `json:"action"`
}

type RebuyData struct {
	Amount float64 `json:"amount"`
}

// Server → Client Messages

type WelcomeData struct {
	SessionID string  `json:"sessionId"`
	Name      string  `json:"name"`
	Bankroll  float64 `json:"bankroll"`
}

type RoundStartedData struct {
	RoundID         string   `json:"roundId"`
	Bet             float64  `json:"bet"`
	PlayerCards     []string `json:"playerCards"`
	PlayerTotal     int      `json:"playerTotal"`
	DealerUpcard    string   `json:"dealerUpcard"`
	PlayerBlackjack bool     `json:"playerBlackjack"`
}

type PlayerUpdateData struct {
	RoundID  string `json:"roundId"`
	Decision string `json:"decision"`
	Card     string `json:"card,omitempty"`
	Total    int    `json:"total"`
	Busted   bool   `json:"busted"`
}

type RoundResultData struct {
	RoundID         string   `json:"roundId"`
	Outcome         string   `json:"outcome"`
	Bet             float64  `json:"bet"`
	Delta           float64  `json:"delta"`
	PlayerTotal     int      `json:"playerTotal"`
	DealerTotal     int      `json:"dealerTotal"`
	DealerCards     []string `json:"dealerCards"`
	PlayerBusted    bool     `json:"playerBusted"`
	DealerBusted    bool     `json:"dealerBusted"`
	PlayerBlackjack bool     `json:"playerBlackjack"`
	Bankroll        float64  `json:"bankroll"`
	Broke           bool     `json:"broke"`
}

type RebuyAcceptedData struct {
	Amount   float64 `json:"amount"`
	Bankroll float64 `json:"bankroll"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// RoundResultFromSettlement builds the result message for a settled round
func RoundResultFromSettlement(s game.Settlement, dealerCards []deck.Card) RoundResultData {
	return RoundResultData{
		RoundID:         s.RoundID,
		Outcome:         s.Outcome.String(),
		Bet:             s.Bet,
		Delta:           s.Delta,
		PlayerTotal:     s.PlayerTotal,
		DealerTotal:     s.DealerTotal,
		DealerCards:     cardStrings(dealerCards),
		PlayerBusted:    s.PlayerBusted,
		DealerBusted:    s.DealerBusted,
		PlayerBlackjack: s.PlayerBlackjack,
		Bankroll:        s.Bankroll,
		Broke:           s.Bankroll <= 0,
	}
}
