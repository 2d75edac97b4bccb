package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineOutcome(t *testing.T) {
	tests := []struct {
		name         string
		playerBusted bool
		dealerBusted bool
		playerTotal  int
		dealerTotal  int
		want         Outcome
	}{
		{"player higher", false, false, 20, 18, PlayerWin},
		{"equal totals tie", false, false, 18, 18, Tie},
		{"dealer higher", false, false, 17, 19, DealerWin},
		{"player bust loses", true, false, 25, 17, DealerWin},
		{"player bust loses even if dealer busts", true, true, 25, 24, DealerWin},
		{"dealer bust wins", false, true, 12, 23, PlayerWin},
		{"twenty one ties twenty one", false, false, 21, 21, Tie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutcome(tt.playerBusted, tt.dealerBusted, tt.playerTotal, tt.dealerTotal))
		})
	}
}

func TestOutcomeDelta(t *testing.T) {
	assert.Equal(t, 50.0, PlayerWin.Delta(50))
	assert.Equal(t, -30.0, DealerWin.Delta(30))
	assert.Equal(t, 0.0, Tie.Delta(50))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "player_win", PlayerWin.String())
	assert.Equal(t, "dealer_win", DealerWin.String())
	assert.Equal(t, "tie", Tie.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}
