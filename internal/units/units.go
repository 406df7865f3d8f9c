// Package units converts between raw on-chain integer amounts and decimal strings.
package units

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	"quoteScope/internal/model"
)

var ten = big.NewInt(10)

// Pow10 returns 10^decimals.
func Pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(decimals)), nil)
}

// ToDecimal renders raw as a minimal exact decimal string.
// For decimals > 0 at least one fractional digit is kept ("1000.0").
func ToDecimal(raw *big.Int, decimals uint8) string {
	if raw == nil {
		raw = new(big.Int)
	}
	if decimals == 0 {
		return raw.String()
	}

	rat := new(big.Rat).SetFrac(raw, Pow10(decimals))
	text := rat.FloatString(int(decimals))

	text = strings.TrimRight(text, "0")
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	return text
}

// ToRaw parses a non-negative decimal numeral into raw units.
func ToRaw(input string, decimals uint8) (*big.Int, error) {
	intPart, fracPart, hasDot := strings.Cut(input, ".")
	if intPart == "" && fracPart == "" {
		return nil, model.ErrInvalidAmountFormat(input, "empty amount")
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, model.ErrInvalidAmountFormat(input, "expected digits with at most one '.'")
	}
	if hasDot && decimals == 0 && fracPart != "" {
		return nil, model.ErrInvalidAmountFormat(input, "token has no fractional units")
	}
	if len(fracPart) > int(decimals) {
		return nil, model.ErrInvalidAmountFormat(input, "more fractional digits than token decimals")
	}

	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	raw, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, model.ErrInvalidAmountFormat(input, "not a base-10 numeral")
	}
	if _, overflow := uint256.FromBig(raw); overflow {
		return nil, model.ErrInvalidAmountFormat(input, "amount exceeds uint256")
	}
	return raw, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
