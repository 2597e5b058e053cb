package gamify

import "math"

// The XP curve is triangular: reaching level L+1 from level L costs L*50 XP,
// so the cumulative XP needed to stand at level L is 25*L*(L-1).
// XP is unbounded, so levels are computed by inverting the formula rather
// than walking a table.

// CumulativeXPForLevel returns the total XP required to reach a given level.
// Level 1 requires 0 XP.
func CumulativeXPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	l := int64(level)
	return 25 * l * (l - 1)
}

// LevelFromXP returns the highest level L with CumulativeXPForLevel(L) <= xp.
// Closed-form inversion of the triangular threshold, with an integer fixup
// loop to absorb any floating-point error at large XP values.
func LevelFromXP(xp int64) int {
	if xp <= 0 {
		return 1
	}

	// 25L² - 25L - xp <= 0  →  L <= (25 + sqrt(625 + 100·xp)) / 50
	level := int((25 + math.Sqrt(625+100*float64(xp))) / 50)
	if level < 1 {
		level = 1
	}

	for CumulativeXPForLevel(level) > xp {
		level--
	}
	for CumulativeXPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// XPToNextLevel returns XP remaining from the given total until the next level.
func XPToNextLevel(xp int64) int64 {
	next := CumulativeXPForLevel(LevelFromXP(xp) + 1)
	return next - xp
}

// LevelProgressPct returns progress toward the next level (0.0–100.0).
func LevelProgressPct(xp int64) float64 {
	level := LevelFromXP(xp)
	floor := CumulativeXPForLevel(level)
	ceil := CumulativeXPForLevel(level + 1)
	span := ceil - floor
	if span <= 0 {
		return 100.0
	}
	pct := float64(xp-floor) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
