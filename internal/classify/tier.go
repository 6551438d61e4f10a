package classify

import "math"

// Tier is the ordered buy-size classification used for display emphasis.
type Tier int

const (
	TierSplash Tier = iota
	TierTadpole
	TierSmallGuy
	TierSwampBoss
	TierFrogKing
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierFrogKing:
		return "FrogKing"
	case TierSwampBoss:
		return "SwampBoss"
	case TierSmallGuy:
		return "SmallGuy"
	case TierTadpole:
		return "Tadpole"
	default:
		return "Splash"
	}
}

// Badge returns the display badge for the tier.
func (t Tier) Badge() string {
	switch t {
	case TierFrogKing:
		return "👑 FROG KING"
	case TierSwampBoss:
		return "🐊 SWAMP BOSS"
	case TierSmallGuy:
		return "🐸 SMALL GUY"
	case TierTadpole:
		return "🪱 TADPOLE"
	default:
		return "💧 SPLASH"
	}
}

// Thresholds are inclusive lower bounds for each tier above the base.
// Anything below Tadpole is a Splash.
type Thresholds struct {
	Tadpole   float64
	SmallGuy  float64
	SwampBoss float64
	FrogKing  float64
}

// DefaultThresholds returns the stock tier thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Tadpole:   100,
		SmallGuy:  1_000,
		SwampBoss: 10_000,
		FrogKing:  50_000,
	}
}

// TierFor maps a bought amount to its tier. Thresholds are evaluated from
// highest to lowest, first match wins, so a tie at an exact threshold
// belongs to the higher tier. Non-finite or non-positive amounts are always
// the lowest tier.
func TierFor(amount float64, th Thresholds) Tier {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return TierSplash
	}
	switch {
	case amount >= th.FrogKing:
		return TierFrogKing
	case amount >= th.SwampBoss:
		return TierSwampBoss
	case amount >= th.SmallGuy:
		return TierSmallGuy
	case amount >= th.Tadpole:
		return TierTadpole
	default:
		return TierSplash
	}
}
