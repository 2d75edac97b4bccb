package game

import "github.com/charmbracelet/log"

// LogSubscriber writes every event to a structured logger
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber creates a subscriber logging under the "events" prefix
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger.WithPrefix("events")}
}

// OnEvent implements EventSubscriber
func (s *LogSubscriber) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case RoundStartEvent:
		s.logger.Info("Deal", "round", e.RoundID, "player", cardStrings(e.PlayerCards), "total", e.PlayerTotal,
			"upcard", e.DealerUpcard.String(), "blackjack", e.PlayerBlackjack)
	case PlayerActionEvent:
		kv := []any{"round", e.RoundID, "decision", e.Decision.String(), "total", e.Total, "busted", e.Busted}
		if e.Card != nil {
			kv = append(kv, "card", e.Card.String())
		}
		s.logger.Info("Player", kv...)
	case DealerTurnEvent:
		s.logger.Info("Dealer", "round", e.RoundID, "cards", cardStrings(e.DealerCards), "total", e.Total,
			"busted", e.Busted, "drew", e.Drew)
	case RoundSettledEvent:
		st := e.Settlement
		s.logger.Info("Settled", "round", st.RoundID, "outcome", st.Outcome.String(), "bet", st.Bet,
			"delta", st.Delta, "bankroll", st.Bankroll)
	case RoundAbortedEvent:
		s.logger.Error("Aborted", "round", e.RoundID, "phase", e.Phase.String(), "error", e.Err)
	case RebuyEvent:
		s.logger.Info("Rebuy", "amount", e.Amount)
	default:
		s.logger.Warn("Unknown event", "type", event.EventType())
	}
}
