package classify

import (
	"fmt"
	"math"
)

// CompactLabel abbreviates an amount with K/M/B suffixes at two-decimal
// precision, integer truncation below 1000, and an empty label for
// non-finite input.
func CompactLabel(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("%.2fB", amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("%.2fM", amount/1e6)
	case amount >= 1e3:
		return fmt.Sprintf("%.2fK", amount/1e3)
	default:
		return fmt.Sprintf("%d", int64(amount))
	}
}
