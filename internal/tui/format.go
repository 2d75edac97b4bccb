package tui

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/input"
)

// entry is one line of the game log
type entry struct {
	text  string
	style kind
}

type kind int

const (
	kindPlain kind = iota
	kindInfo
	kindSuccess
	kindError
	kindWarning
)

func (e entry) render() string {
	switch e.style {
	case kindInfo:
		return InfoStyle.Render(e.text)
	case kindSuccess:
		return SuccessStyle.Render(e.text)
	case kindError:
		return ErrorStyle.Render(e.text)
	case kindWarning:
		return WarningStyle.Render(e.text)
	default:
		return GameLogStyle.Render(e.text)
	}
}

// formatEvent turns a round event into log entries
func formatEvent(event game.GameEvent) []entry {
	switch e := event.(type) {
	case game.RoundStartEvent:
		out := []entry{{text: fmt.Sprintf("You are dealt %s (%d). Dealer shows %s.",
			plainCards(e.PlayerCards), e.PlayerTotal, e.DealerUpcard)}}
		if e.PlayerBlackjack {
			out = append(out, entry{text: "Blackjack!", style: kindSuccess})
		}
		return out
	case game.PlayerActionEvent:
		if e.Card == nil {
			return []entry{{text: fmt.Sprintf("You stand on %d.", e.Total), style: kindInfo}}
		}
		if e.Busted {
			return []entry{{text: fmt.Sprintf("You draw %s and bust with %d.", e.Card, e.Total), style: kindError}}
		}
		return []entry{{text: fmt.Sprintf("You draw %s (%d).", e.Card, e.Total)}}
	case game.DealerTurnEvent:
		text := fmt.Sprintf("Dealer has %s (%d).", plainCards(e.DealerCards), e.Total)
		if e.Busted {
			return []entry{{text: text + " Dealer busts!", style: kindSuccess}}
		}
		return []entry{{text: text}}
	case game.RoundSettledEvent:
		return []entry{settlementEntry(e.Settlement)}
	case game.RoundAbortedEvent:
		return []entry{{text: fmt.Sprintf("Round aborted: %v", e.Err), style: kindError}}
	case game.RebuyEvent:
		return []entry{{text: fmt.Sprintf("Bought back in for %s.", input.FormatMoney(e.Amount)), style: kindInfo}}
	}
	return nil
}

func settlementEntry(s game.Settlement) entry {
	bankroll := input.FormatMoney(s.Bankroll)
	switch s.Outcome {
	case game.PlayerWin:
		return entry{text: fmt.Sprintf("You win %s! Bankroll: %s", input.FormatMoney(s.Bet), bankroll), style: kindSuccess}
	case game.DealerWin:
		return entry{text: fmt.Sprintf("Dealer wins. You lose %s. Bankroll: %s", input.FormatMoney(s.Bet), bankroll), style: kindError}
	default:
		return entry{text: fmt.Sprintf("Push. Bankroll: %s", bankroll), style: kindWarning}
	}
}

func plainCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}
