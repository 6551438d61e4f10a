package classify

import (
	"math"
	"testing"
)

func TestCompactLabel(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{7, "7"},
		{999.9, "999"},
		{1_000, "1.00K"},
		{1_500, "1.50K"},
		{2_300_000, "2.30M"},
		{999_999, "1000.00K"},
		{7_250_000_000, "7.25B"},
	}

	for _, tc := range cases {
		if got := CompactLabel(tc.amount); got != tc.want {
			t.Fatalf("CompactLabel(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestCompactLabelNonFinite(t *testing.T) {
	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := CompactLabel(amount); got != "" {
			t.Fatalf("CompactLabel(%v) = %q, want empty", amount, got)
		}
	}
}
