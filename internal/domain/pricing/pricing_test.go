package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEffectivePrice_NoPromotion(t *testing.T) {
	prices := []string{"0", "1.00", "19.99", "10.1", "9999.99"}

	for _, p := range prices {
		base := decimal.RequireFromString(p)
		got := EffectivePrice(base, nil)
		assert.True(t, got.Equal(base), "price %s changed without a promotion: %s", p, got)
	}
}

func TestEffectivePrice_ZeroDiscount(t *testing.T) {
	base := decimal.RequireFromString("19.99")

	got := EffectivePrice(base, intPtr(0))
	assert.True(t, got.Equal(base), "zero discount must be an identity, got %s", got)
}

func TestEffectivePrice_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		discount int
		want     string
	}{
		{"exact ten percent", "10.00", 10, "9.00"},
		{"rounds to two places", "19.99", 15, "16.99"},
		{"twenty percent", "50.00", 20, "40.00"},
		{"full discount", "19.99", 100, "0.00"},
		{"odd base price", "33.33", 33, "22.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := decimal.RequireFromString(tt.base)
			want := decimal.RequireFromString(tt.want)

			got := EffectivePrice(base, &tt.discount)
			assert.True(t, got.Equal(want), "want %s, got %s", want, got)
		})
	}
}

func TestEffectivePrice_DiscountBound(t *testing.T) {
	base := decimal.RequireFromString("123.45")

	for d := 1; d <= 100; d++ {
		got := EffectivePrice(base, &d)
		require.False(t, got.IsNegative(), "discount %d%% produced negative price %s", d, got)
		require.True(t, got.LessThanOrEqual(base), "discount %d%% produced price %s above base", d, got)
	}
}

func TestEffectivePrice_Idempotent(t *testing.T) {
	base := decimal.RequireFromString("19.99")
	discount := 15

	first := EffectivePrice(base, &discount)
	second := EffectivePrice(base, &discount)
	assert.True(t, first.Equal(second))
}

func TestEffectivePrice_NegativeDiscountRaisesPrice(t *testing.T) {
	base := decimal.RequireFromString("10.00")

	got := EffectivePrice(base, intPtr(-10))
	assert.True(t, got.Equal(decimal.RequireFromString("11.00")))
}

func TestOnSale(t *testing.T) {
	assert.False(t, OnSale(nil))
	assert.False(t, OnSale(intPtr(0)))
	assert.True(t, OnSale(intPtr(1)))
	assert.True(t, OnSale(intPtr(100)))
}

func TestLineTotal_NoFloatDrift(t *testing.T) {
	// 10.1 * 3 must be exactly 30.3, not 30.299999...
	base := decimal.RequireFromString("10.1")

	got := LineTotal(base, nil, 3)
	assert.Equal(t, "30.3", got.String())
}

func TestLineTotal_WithDiscount(t *testing.T) {
	base := decimal.RequireFromString("50.00")
	discount := 20

	got := LineTotal(base, &discount, 2)
	assert.True(t, got.Equal(decimal.RequireFromString("80.00")))
}
