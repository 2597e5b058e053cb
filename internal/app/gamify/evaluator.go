package gamify

import "github.com/momentum-labs/momentum/internal/domain"

// Satisfied reports whether a locked achievement's condition holds against
// the given state snapshot and derived counters.
//
// Pure function: no I/O, no side effects. Evaluation must be deterministic
// and replayable, so the quadrant counts and fastest-completion value are
// passed in rather than re-derived here.
func Satisfied(a domain.Achievement, s *domain.GamificationState, ctx domain.EvalContext) bool {
	// Unlock is terminal — already-unlocked achievements are never re-evaluated.
	if a.Unlocked() {
		return false
	}

	c := a.Condition
	switch c.Type {
	case domain.CondTasksCompleted:
		return s.TotalTasksCompleted >= c.Count

	case domain.CondStreakDays:
		return int64(s.Streak) >= c.Count

	case domain.CondTimerTotal:
		return s.TotalTimerSeconds >= c.Seconds

	case domain.CondEarlyBird:
		return int64(s.EarlyBirdCount) >= c.Count

	case domain.CondQuadrantMaster:
		return int64(ctx.QuadrantCounts[c.Quadrant]) >= c.Count

	case domain.CondPerfectDay:
		return int64(s.PerfectDays) >= c.Count

	case domain.CondSpeedDemon:
		// Zero means no completion recorded yet — must not falsely satisfy.
		return ctx.FastestCompletionSeconds > 0 && ctx.FastestCompletionSeconds <= c.Seconds

	case domain.CondConsistency:
		return s.ActiveDays >= c.Days

	case domain.CondCustom:
		// Custom achievements are unlocked manually, never automatically.
		return false
	}

	return false
}
