// Package domain holds the pure Momentum types.
// The gamification engine drives task completion through XP, levels,
// streaks, achievements, and rewards. No infrastructure imports here.
package domain

import "time"

// ─── Quadrant Types ─────────────────────────────────────────────────────────

// Quadrant is an Eisenhower-matrix priority bucket.
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "do_first"
	QuadrantSchedule  Quadrant = "schedule"
	QuadrantDelegate  Quadrant = "delegate"
	QuadrantEliminate Quadrant = "eliminate"
)

// ─── Gamification State ─────────────────────────────────────────────────────

// GamificationState is the single per-user gamification snapshot.
// Mutated exclusively through the gamify.Engine; persisted as an opaque
// serialized blob with a monotonic version counter.
type GamificationState struct {
	XP     int64 `json:"xp"`     // cumulative, never decremented by gameplay
	Level  int   `json:"level"`  // always levelFromXP(XP) after a mutation
	Streak int   `json:"streak"` // consecutive active days

	LastActiveDate string `json:"last_active_date"` // "2006-01-02", empty = never active

	TotalTasksCompleted int64 `json:"total_tasks_completed"`
	TotalTimerSeconds   int64 `json:"total_timer_seconds"`
	EarlyBirdCount      int   `json:"early_bird_count"`
	PerfectDays         int   `json:"perfect_days"`
	ActiveDays          int   `json:"active_days"`

	// FastestCompletionSeconds is the shortest recorded timer session.
	// Zero means no session recorded yet and must never satisfy speed_demon.
	FastestCompletionSeconds int64 `json:"fastest_completion_seconds"`

	// QuadrantCounts tracks completions per Eisenhower quadrant.
	QuadrantCounts map[Quadrant]int `json:"quadrant_counts"`

	// DailyCompletionDates backs the active-day and perfect-day logic.
	// Membership matters, insertion order does not. Pruned to a rolling
	// window so it cannot grow without bound.
	DailyCompletionDates map[string]bool `json:"daily_completion_dates"`

	// PerfectDayDates guards PerfectDays so a day is counted at most once
	// no matter how many completions land after the day is already perfect.
	PerfectDayDates map[string]bool `json:"perfect_day_dates"`

	Achievements []Achievement `json:"achievements"`
	Rewards      []Reward      `json:"rewards"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// ConditionType tags the kind of unlock condition.
type ConditionType string

const (
	CondTasksCompleted ConditionType = "tasks_completed"
	CondStreakDays     ConditionType = "streak_days"
	CondTimerTotal     ConditionType = "timer_total"
	CondEarlyBird      ConditionType = "early_bird"
	CondQuadrantMaster ConditionType = "quadrant_master"
	CondPerfectDay     ConditionType = "perfect_day"
	CondSpeedDemon     ConditionType = "speed_demon"
	CondConsistency    ConditionType = "consistency"
	CondCustom         ConditionType = "custom" // manual unlock only, never auto
)

// Condition is the tagged unlock condition for an achievement.
// Only the fields relevant to Type are meaningful.
type Condition struct {
	Type        ConditionType `json:"type"`
	Count       int64         `json:"count,omitempty"`       // tasks_completed, streak_days, early_bird, quadrant_master, perfect_day
	Seconds     int64         `json:"seconds,omitempty"`     // timer_total (>=), speed_demon (<=)
	Days        int           `json:"days,omitempty"`        // consistency: distinct active days
	Quadrant    Quadrant      `json:"quadrant,omitempty"`    // quadrant_master
	Description string        `json:"description,omitempty"` // custom
}

// Achievement is a one-time unlockable milestone with a fixed XP reward.
// An absent UnlockedAt means locked; once set it is terminal.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Condition   Condition  `json:"condition"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	XPReward    int64      `json:"xp_reward"`
	IsCustom    bool       `json:"is_custom"`
}

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

// ─── Reward Types ───────────────────────────────────────────────────────────

// Reward is a claimable marker gated on an XP threshold.
// Claiming does not deduct XP: XP is cumulative, not a spendable balance.
type Reward struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	XPCost      int64      `json:"xp_cost"`
	Claimed     bool       `json:"claimed"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
}

// ─── Evaluation Context ─────────────────────────────────────────────────────

// EvalContext carries the derived counters an achievement condition may need
// beyond the state snapshot itself. Built once per evaluation pass so the
// evaluator stays pure and replayable.
type EvalContext struct {
	QuadrantCounts           map[Quadrant]int
	FastestCompletionSeconds int64
}

// ─── Task Types ─────────────────────────────────────────────────────────────

// Task is the slice of a task the engine cares about. Task CRUD itself
// lives outside the gamification core.
type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Quadrant Quadrant `json:"quadrant"`
}
