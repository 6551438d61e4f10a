package classify

import (
	"math/big"
	"strings"
)

// HumanAmount converts a raw smallest-unit quantity into a human-readable
// amount. The string form is exact (big.Rat, trailing zeros trimmed) and is
// the display fallback when the float64 form overflows to +Inf.
func HumanAmount(raw *big.Int, decimals uint8) (float64, string) {
	if raw == nil {
		return 0, "0"
	}
	if decimals == 0 {
		f, _ := new(big.Float).SetInt(raw).Float64()
		return f, raw.String()
	}

	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(raw, denom)

	text := rat.FloatString(int(decimals))
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}

	f, _ := new(big.Float).SetRat(rat).Float64()
	return f, text
}
