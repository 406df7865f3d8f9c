package service

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// displayPlaces bounds the fractional digits of display-only ratios.
const displayPlaces = 18

// ratio renders (num / 10^numDecimals) / (den / 10^denDecimals) for display.
// It returns false when den is zero.
func ratio(num *big.Int, numDecimals uint8, den *big.Int, denDecimals uint8) (decimal.Decimal, bool) {
	if den == nil || den.Sign() == 0 || num == nil {
		return decimal.Zero, false
	}
	n := decimal.NewFromBigInt(num, -int32(numDecimals))
	d := decimal.NewFromBigInt(den, -int32(denDecimals))
	return n.DivRound(d, displayPlaces), true
}

func displayString(value decimal.Decimal) string {
	return value.Round(displayPlaces).String()
}
