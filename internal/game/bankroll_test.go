package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankroll(t *testing.T) {
	b, err := NewBankroll(100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.Balance())
	assert.False(t, b.IsBroke())

	for _, v := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := NewBankroll(v)
		assert.ErrorIs(t, err, ErrInvalidAmount, "initial %v", v)
	}
}

func TestBankrollValidateBet(t *testing.T) {
	b, err := NewBankroll(100)
	require.NoError(t, err)

	assert.NoError(t, b.ValidateBet(100))
	assert.NoError(t, b.ValidateBet(0.01))

	for _, bet := range []float64{0, -1, 100.01, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, b.ValidateBet(bet), ErrInvalidBet, "bet %v", bet)
	}
}

func TestBankrollApply(t *testing.T) {
	b, err := NewBankroll(100)
	require.NoError(t, err)

	assert.Equal(t, 50.0, b.apply(PlayerWin, 50))
	assert.Equal(t, 150.0, b.Balance())

	assert.Equal(t, 0.0, b.apply(Tie, 50))
	assert.Equal(t, 150.0, b.Balance())

	assert.Equal(t, -150.0, b.apply(DealerWin, 150))
	assert.True(t, b.IsBroke())
}

func TestBankrollRebuy(t *testing.T) {
	b, err := NewBankroll(20)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Rebuy(100), ErrNotBroke)

	b.apply(DealerWin, 20)
	require.True(t, b.IsBroke())

	assert.ErrorIs(t, b.Rebuy(0), ErrInvalidAmount)
	require.NoError(t, b.Rebuy(75.5))
	assert.Equal(t, 75.5, b.Balance())
}
