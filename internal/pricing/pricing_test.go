package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name       string
		unit       string
		multiplier string
		qty        int
		want       string
	}{
		{"premium lens rounds half up", "49.99", "1.5", 1, "74.99"},
		{"regular lens", "49.99", "1.0", 1, "49.99"},
		{"pro lens two units", "49.99", "2.0", 2, "199.96"},
		{"free frame", "0", "1.5", 3, "0"},
		{"half cent rounds up", "10.01", "1.5", 1, "15.02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineTotal(decimal.RequireFromString(tt.unit), decimal.RequireFromString(tt.multiplier), tt.qty)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestLineTotal_Rejects(t *testing.T) {
	_, err := LineTotal(decimal.RequireFromString("-1"), decimal.NewFromInt(1), 1)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = LineTotal(decimal.NewFromInt(1), decimal.Zero, 1)
	assert.ErrorIs(t, err, ErrInvalidMultiplier)

	_, err = LineTotal(decimal.NewFromInt(1), decimal.NewFromInt(1), 0)
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)

	_, err = LineTotal(decimal.RequireFromString("9000000000"), decimal.RequireFromString("2.0"), 1)
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}

func TestParsePrice(t *testing.T) {
	d, err := ParsePrice("49.994")
	require.NoError(t, err)
	assert.Equal(t, "49.99", d.StringFixed(2))

	_, err = ParsePrice("notanumber")
	assert.Error(t, err)

	_, err = ParsePrice("-3")
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = ParsePrice("1e12")
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	d, err = ParsePrice("9999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", d.StringFixed(2))
}

func TestCheckAmount(t *testing.T) {
	assert.NoError(t, CheckAmount(decimal.Zero))
	assert.NoError(t, CheckAmount(decimal.RequireFromString("9999999999.994")))
	assert.ErrorIs(t, CheckAmount(decimal.RequireFromString("9999999999.995")), ErrAmountTooLarge)
	assert.ErrorIs(t, CheckAmount(MaxAmount), ErrAmountTooLarge)
	assert.ErrorIs(t, CheckAmount(decimal.RequireFromString("-0.01")), ErrNegativePrice)
}

func TestSum(t *testing.T) {
	got := Sum(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.20"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.30")))
	assert.True(t, Sum().IsZero())
}
