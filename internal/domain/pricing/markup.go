package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Settings is the singleton pricing record maintained by the admin surface.
type Settings struct {
	MarkupPercent float64
}

// DefaultSettings applies when no record has been stored yet.
func DefaultSettings() Settings {
	return Settings{MarkupPercent: 0}
}

// ApplyMarkup returns round(max(0,base) * (1 + max(0,markup)/100)), rounding half away from zero.
// Negative or NaN inputs are clamped to zero.
func ApplyMarkup(baseCents int64, markupPercent float64) int64 {
	if baseCents <= 0 {
		return 0
	}
	if math.IsNaN(markupPercent) || markupPercent < 0 {
		markupPercent = 0
	}
	if math.IsInf(markupPercent, 1) {
		return math.MaxInt64
	}

	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(markupPercent).Div(hundred))
	result := decimal.NewFromInt(baseCents).Mul(factor).Round(0)
	if !result.LessThan(decimal.NewFromInt(math.MaxInt64)) {
		return math.MaxInt64
	}
	return result.IntPart()
}

// CentsFromPrice converts a supplier price in currency units to cents using round(price*100).
// ok is false for negative, NaN or infinite prices.
func CentsFromPrice(price float64) (cents int64, ok bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return decimal.NewFromFloat(price).Mul(hundred).Round(0).IntPart(), true
}
