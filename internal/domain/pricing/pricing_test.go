//go:build unit

package pricing_test

import (
	"math"
	"testing"

	"storefront-sync/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
)

func TestApplyMarkup(t *testing.T) {
	tests := []struct {
		name    string
		base    int64
		markup  float64
		expects int64
	}{
		{name: "no markup", base: 1000, markup: 0, expects: 1000},
		{name: "25 percent", base: 1000, markup: 25, expects: 1250},
		{name: "rounds half up", base: 1, markup: 50, expects: 2},
		{name: "rounds down below half", base: 3, markup: 10, expects: 3},
		{name: "fractional markup", base: 1999, markup: 12.5, expects: 2249},
		{name: "zero base", base: 0, markup: 40, expects: 0},
		{name: "negative base clamps to zero", base: -500, markup: 40, expects: 0},
		{name: "negative markup clamps to zero", base: 1000, markup: -30, expects: 1000},
		{name: "NaN markup clamps to zero", base: 1000, markup: math.NaN(), expects: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expects, pricing.ApplyMarkup(tt.base, tt.markup))
		})
	}
}

func TestApplyMarkupProperties(t *testing.T) {
	t.Run("zero base is always zero", func(t *testing.T) {
		for _, m := range []float64{0, 0.5, 1, 10, 33.3, 100, 250, 1000} {
			assert.Equal(t, int64(0), pricing.ApplyMarkup(0, m), "markup %v", m)
		}
	})

	t.Run("monotonic in base", func(t *testing.T) {
		for _, m := range []float64{0, 7.5, 15, 33.333, 120} {
			prev := pricing.ApplyMarkup(0, m)
			for base := int64(1); base <= 5000; base += 7 {
				cur := pricing.ApplyMarkup(base, m)
				assert.GreaterOrEqual(t, cur, prev, "base %d markup %v", base, m)
				assert.GreaterOrEqual(t, cur, int64(0))
				prev = cur
			}
		}
	})

	t.Run("monotonic in markup", func(t *testing.T) {
		for _, base := range []int64{1, 3, 99, 1999, 123456} {
			prev := pricing.ApplyMarkup(base, 0)
			for m := 0.0; m <= 300; m += 0.25 {
				cur := pricing.ApplyMarkup(base, m)
				assert.GreaterOrEqual(t, cur, prev, "base %d markup %v", base, m)
				prev = cur
			}
		}
	})
}

func TestCentsFromPrice(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		cents  int64
		wantOK bool
	}{
		{name: "whole", price: 12, cents: 1200, wantOK: true},
		{name: "two decimals", price: 19.99, cents: 1999, wantOK: true},
		{name: "binary float edge rounds by shortest representation", price: 19.995, cents: 2000, wantOK: true},
		{name: "sub cent rounds", price: 0.004, cents: 0, wantOK: true},
		{name: "zero", price: 0, cents: 0, wantOK: true},
		{name: "negative rejected", price: -1, wantOK: false},
		{name: "NaN rejected", price: math.NaN(), wantOK: false},
		{name: "Inf rejected", price: math.Inf(1), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, ok := pricing.CentsFromPrice(tt.price)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.cents, cents)
			}
		})
	}
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		subtotal int64
		expects  int64
	}{
		{name: "zone 1", state: "CA", subtotal: 1000, expects: 599},
		{name: "zone 2", state: "CO", subtotal: 1000, expects: 799},
		{name: "zone 3", state: "TX", subtotal: 1000, expects: 999},
		{name: "zone 4", state: "NY", subtotal: 1000, expects: 1299},
		{name: "zone 5", state: "HI", subtotal: 1000, expects: 1999},
		{name: "lowercase and padded code", state: " ca ", subtotal: 1000, expects: 599},
		{name: "unknown code falls back to zone 4", state: "ZZ", subtotal: 1000, expects: 1299},
		{name: "empty code falls back to zone 4", state: "", subtotal: 0, expects: 1299},
		{name: "just under threshold", state: "HI", subtotal: 14999, expects: 1999},
		{name: "at threshold is free", state: "HI", subtotal: 15000, expects: 0},
		{name: "above threshold is free for unknown code", state: "XX", subtotal: 90000, expects: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expects, pricing.ShippingCost(tt.state, tt.subtotal))
		})
	}
}

func TestShippingCostUnknownCodesUseZone4(t *testing.T) {
	zone4 := pricing.ZoneRate(pricing.Zone4)
	for _, code := range []string{"QQ", "ON", "BC", "12345", "California", "??"} {
		assert.Equal(t, zone4, pricing.ShippingCost(code, 100), code)
		assert.Equal(t, int64(0), pricing.ShippingCost(code, pricing.FreeShippingThresholdCents), code)
	}
}

func TestTaxCents(t *testing.T) {
	assert.Equal(t, int64(0), pricing.TaxCents(10000, 0))
	assert.Equal(t, int64(825), pricing.TaxCents(10000, 8.25))
	assert.Equal(t, int64(0), pricing.TaxCents(-10, 8.25))
}
