package classify

import (
	"math"
	"strings"
)

// Indicator strategies.
const (
	StrategyLinear = "linear"
	StrategyLadder = "ladder"
)

// IndicatorConfig selects and parameterizes the magnitude indicator.
type IndicatorConfig struct {
	Strategy string

	// Linear meter: one filled symbol per Step, at most MaxUnits.
	Step     float64
	MaxUnits int

	// Doubling ladder: Slots symbols, slot i earned at Base * 2^i.
	Base  float64
	Slots int

	Filled string
	Empty  string
}

// DefaultIndicatorConfig returns the stock ladder indicator.
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		Strategy: StrategyLadder,
		Step:     500,
		MaxUnits: 10,
		Base:     100,
		Slots:    10,
		Filled:   "🟢",
		Empty:    "⚪",
	}
}

// Indicator renders the bounded magnitude indicator for a bought amount.
func Indicator(amount float64, cfg IndicatorConfig) string {
	filled := cfg.Filled
	if filled == "" {
		filled = "🟢"
	}

	switch cfg.Strategy {
	case StrategyLinear:
		return linearMeter(amount, cfg.Step, cfg.MaxUnits, filled)
	default:
		empty := cfg.Empty
		if empty == "" {
			empty = "⚪"
		}
		return doublingLadder(amount, cfg.Base, cfg.Slots, filled, empty)
	}
}

// linearMeter yields min(cap, floor(amount/step)) filled symbols and nothing
// below one step.
func linearMeter(amount, step float64, maxUnits int, filled string) string {
	if math.IsNaN(amount) || step <= 0 || maxUnits <= 0 || amount < step {
		return ""
	}
	units := maxUnits
	if ratio := math.Floor(amount / step); ratio < float64(maxUnits) {
		units = int(ratio)
	}
	return strings.Repeat(filled, units)
}

// doublingLadder fills slots in increasing order, slot i earned at
// base * 2^i, stopping at the first unearned slot. Output is always exactly
// `slots` symbols: a filled prefix and an empty suffix.
func doublingLadder(amount, base float64, slots int, filled, empty string) string {
	if slots <= 0 {
		return ""
	}
	if base <= 0 || math.IsNaN(amount) {
		return strings.Repeat(empty, slots)
	}

	earned := 0
	threshold := base
	for earned < slots && amount >= threshold {
		earned++
		threshold *= 2
	}
	return strings.Repeat(filled, earned) + strings.Repeat(empty, slots-earned)
}
