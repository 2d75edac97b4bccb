package server

import (
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/input"
)

// Session is one player's game over a connection. It is driven from a
// single goroutine.
type Session struct {
	id              string
	name            string
	defaultBankroll float64
	rng             *rand.Rand
	opts            []game.Option
	game            *game.Game
	bet             float64
	logger          *log.Logger
	send            func(MessageType, any)
}

// NewSession creates a session that has not said hello yet
func NewSession(rng *rand.Rand, defaultBankroll float64, logger *log.Logger, opts ...game.Option) *Session {
	id := uuid.NewString()
	return &Session{
		id:              id,
		defaultBankroll: defaultBankroll,
		rng:             rng,
		opts:            opts,
		logger:          logger.WithPrefix("session").With("session", id),
		send:            func(MessageType, any) {},
	}
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Name returns the player's name, empty before hello
func (s *Session) Name() string { return s.name }

// Game returns the session's game, nil before hello
func (s *Session) Game() *game.Game { return s.game }

// Handle processes one client message
func (s *Session) Handle(msg *Message) {
	s.logger.Debug("Received message", "type", msg.Type, "player", s.name)

	switch msg.Type {
	case MessageTypeHello:
		var data HelloData
		if !s.decode(msg, &data) {
			return
		}
		s.handleHello(data)

	case MessageTypeBet:
		var data BetData
		if !s.decode(msg, &data) {
			return
		}
		s.handleBet(data)

	case MessageTypeDecision:
		var data DecisionData
		if !s.decode(msg, &data) {
			return
		}
		s.handleDecision(data)

	case MessageTypeRebuy:
		var data RebuyData
		if !s.decode(msg, &data) {
			return
		}
		s.handleRebuy(data)

	default:
		s.sendError(ErrorCodeInvalidMessage, "Unknown message type: "+msg.Type.String())
	}
}

func (s *Session) decode(msg *Message, v any) bool {
	if len(msg.Data) == 0 {
		s.sendError(ErrorCodeInvalidMessage, fmt.Sprintf("Missing %s data", msg.Type))
		return false
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		s.sendError(ErrorCodeInvalidMessage, fmt.Sprintf("Failed to parse %s data", msg.Type))
		return false
	}
	return true
}

func (s *Session) handleHello(data HelloData) {
	if s.game != nil {
		s.sendError(ErrorCodeWrongPhase, "Already said hello")
		return
	}

	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = "Player"
	}
	bankroll := data.Bankroll
	if bankroll == 0 {
		bankroll = s.defaultBankroll
	}

	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(s.onEvent))

	opts := append([]game.Option{game.WithEventBus(bus), game.WithLogger(s.logger)}, s.opts...)
	g, err := game.NewGame(s.rng, bankroll, opts...)
	if err != nil {
		s.sendGameError(err)
		return
	}

	s.name = name
	s.game = g
	s.logger = s.logger.With("player", name)
	s.logger.Info("Player joined", "bankroll", bankroll)

	s.send(MessageTypeWelcome, WelcomeData{
		SessionID: s.id,
		Name:      name,
		Bankroll:  g.CurrentBankroll(),
	})
}

func (s *Session) handleBet(data BetData) {
	if !s.ready() {
		return
	}
	if r := s.game.CurrentRound(); r != nil && !r.Phase().Done() {
		s.sendError(ErrorCodeWrongPhase, "Round already in progress")
		return
	}
	if err := s.game.ValidateBet(data.Amount); err != nil {
		s.sendError(ErrorCodeInvalidBet, fmt.Sprintf("Bet must be positive and at most %s", input.FormatMoney(s.game.CurrentBankroll())))
		return
	}

	s.bet = data.Amount
	r, err := s.game.StartRound()
	if err != nil {
		s.sendGameError(err)
		return
	}
	if r.Phase() == game.PhaseDealerTurn {
		s.finishRound()
	}
}

func (s *Session) handleDecision(data DecisionData) {
	if !s.ready() {
		return
	}

	d, err := input.ParseDecision(data.Action)
	if err != nil {
		s.sendError(ErrorCodeInvalidDecision, fmt.Sprintf("Invalid decision %q: expected hit or stand", data.Action))
		return
	}

	res, err := s.game.ApplyPlayerDecision(d)
	if err != nil {
		s.sendGameError(err)
		return
	}
	if res.TurnOver {
		s.finishRound()
	}
}

func (s *Session) handleRebuy(data RebuyData) {
	if !s.ready() {
		return
	}
	if err := s.game.Rebuy(data.Amount); err != nil {
		s.sendGameError(err)
		return
	}
	s.send(MessageTypeRebuyAccepted, RebuyAcceptedData{
		Amount:   data.Amount,
		Bankroll: s.game.CurrentBankroll(),
	})
}

// finishRound runs the dealer and settles once the player's turn is over
func (s *Session) finishRound() {
	if _, err := s.game.RunDealerTurn(); err != nil {
		s.sendGameError(err)
		return
	}
	if _, err := s.game.Settle(s.bet); err != nil {
		s.sendGameError(err)
	}
}

func (s *Session) ready() bool {
	if s.game == nil {
		s.sendError(ErrorCodeWrongPhase, "Say hello first")
		return false
	}
	return true
}

// onEvent forwards round events to the client
func (s *Session) onEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		s.send(MessageTypeRoundStarted, RoundStartedData{
			RoundID:         e.RoundID,
			Bet:             s.bet,
			PlayerCards:     cardStrings(e.PlayerCards),
			PlayerTotal:     e.PlayerTotal,
			DealerUpcard:    e.DealerUpcard.String(),
			PlayerBlackjack: e.PlayerBlackjack,
		})
	case game.PlayerActionEvent:
		data := PlayerUpdateData{
			RoundID:  e.RoundID,
			Decision: e.Decision.String(),
			Total:    e.Total,
			Busted:   e.Busted,
		}
		if e.Card != nil {
			data.Card = e.Card.String()
		}
		s.send(MessageTypePlayerUpdate, data)
	case game.RoundSettledEvent:
		var dealer []deck.Card
		if r := s.game.CurrentRound(); r != nil {
			dealer = r.DealerHand().Cards()
		}
		s.send(MessageTypeRoundResult, RoundResultFromSettlement(e.Settlement, dealer))
	}
}

func (s *Session) sendError(code, message string) {
	s.send(MessageTypeError, ErrorData{Code: code, Message: message})
}

// sendGameError maps core errors onto protocol error codes
func (s *Session) sendGameError(err error) {
	code := ErrorCodeInternal
	switch {
	case errors.Is(err, game.ErrInvalidBet), errors.Is(err, game.ErrInvalidAmount), errors.Is(err, game.ErrBankrupt):
		code = ErrorCodeInvalidBet
	case errors.Is(err, game.ErrInvalidDecision):
		code = ErrorCodeInvalidDecision
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrRoundInProgress), errors.Is(err, game.ErrNotBroke):
		code = ErrorCodeWrongPhase
	default:
		s.logger.Error("Round failed", "error", err)
	}
	s.sendError(code, err.Error())
}
