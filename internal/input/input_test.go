package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"50", 50, false},
		{"$50", 50, false},
		{" $ 50.50 ", 50.5, false},
		{"0.01", 0.01, false},
		{"0", 0, true},
		{"-10", 0, true},
		{"$", 0, true},
		{"fifty", 0, true},
		{"", 0, true},
		{"Inf", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"h", "H", " hit ", "HIT"} {
		d, err := ParseDecision(s)
		require.NoError(t, err)
		assert.Equal(t, game.Hit, d)
	}
	for _, s := range []string{"s", "S", "stand"} {
		d, err := ParseDecision(s)
		require.NoError(t, err)
		assert.Equal(t, game.Stand, d)
	}
	for _, s := range []string{"", "x", "double"} {
		_, err := ParseDecision(s)
		assert.ErrorIs(t, err, game.ErrInvalidDecision)
	}
}

func TestParseYesNo(t *testing.T) {
	yes, err := ParseYesNo("YES")
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := ParseYesNo(" n ")
	require.NoError(t, err)
	assert.False(t, no)

	_, err = ParseYesNo("maybe")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$12.50", FormatMoney(12.5))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "-$5.00", FormatMoney(-5))
}
