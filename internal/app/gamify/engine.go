// Package gamify implements the Momentum gamification state machine.
// The engine is the sole mutator of GamificationState: it applies
// completion events, recomputes derived fields, and emits unlock
// side effects as return values.
package gamify

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/momentum-labs/momentum/internal/domain"
	"github.com/momentum-labs/momentum/internal/infra/metrics"
)

const dateLayout = "2006-01-02"

// EngineConfig tunes the state machine.
type EngineConfig struct {
	EarlyCutoffHour int // completions before this local hour count as early-bird
	DateWindowDays  int // rolling cap on the calendar-date sets
}

// DefaultEngineConfig returns production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		EarlyCutoffHour: 9,
		DateWindowDays:  400, // comfortably above the longest streak/consistency threshold
	}
}

// Engine owns the user's gamification state.
// All mutations go through its methods; state is held in memory and
// persisted with an optimistic version counter, so a failed save leaves
// the mutation applied-but-not-durable and Save can simply be retried.
type Engine struct {
	mu     sync.Mutex
	store  domain.StateStore
	clock  domain.Clock
	config EngineConfig

	state   *domain.GamificationState
	version int64
	dirty   bool
}

// NewEngine loads persisted state (or seeds the default catalogs on first
// run) and returns a ready engine.
func NewEngine(store domain.StateStore, clock domain.Clock, cfg EngineConfig) (*Engine, error) {
	e := &Engine{store: store, clock: clock, config: cfg}

	state, version, err := store.LoadState()
	switch err {
	case nil:
		e.state = state
		e.version = version
		// Level is a pure function of XP; recompute on load so a snapshot
		// written by older code can never leave the two inconsistent.
		e.state.Level = LevelFromXP(e.state.XP)
	case domain.ErrStateNotFound:
		e.state = NewState()
		if err := e.store.SaveState(e.state, 0); err != nil {
			return nil, fmt.Errorf("seed state: %w", err)
		}
		e.version = 1
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	if e.state.QuadrantCounts == nil {
		e.state.QuadrantCounts = make(map[domain.Quadrant]int)
	}
	if e.state.DailyCompletionDates == nil {
		e.state.DailyCompletionDates = make(map[string]bool)
	}
	if e.state.PerfectDayDates == nil {
		e.state.PerfectDayDates = make(map[string]bool)
	}
	return e, nil
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// RecordTaskCompletion applies a single task completion. dayComplete tells
// the engine whether every task planned for that day is now done; the task
// list itself lives outside the gamification core.
func (e *Engine) RecordTaskCompletion(task domain.Task, completedAt time.Time, dayComplete bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	local := completedAt.In(e.clock.Location())
	date := local.Format(dateLayout)

	e.state.TotalTasksCompleted++
	if local.Hour() < e.config.EarlyCutoffHour {
		e.state.EarlyBirdCount++
	}

	if !e.state.DailyCompletionDates[date] {
		e.state.DailyCompletionDates[date] = true
		e.state.ActiveDays++
	}

	e.updateStreak(date)
	e.state.QuadrantCounts[task.Quadrant]++

	if dayComplete && !e.state.PerfectDayDates[date] {
		e.state.PerfectDayDates[date] = true
		e.state.PerfectDays++
	}

	e.pruneDates()
	metrics.TasksRecorded.WithLabelValues(string(task.Quadrant)).Inc()

	return e.saveLocked()
}

// RecordTimerSession adds a completed focus session.
// Zero-length sessions are ignored for fastest-completion bookkeeping.
func (e *Engine) RecordTimerSession(elapsedSeconds int64) error {
	if elapsedSeconds < 0 {
		return fmt.Errorf("elapsed seconds must be non-negative, got %d", elapsedSeconds)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.TotalTimerSeconds += elapsedSeconds
	if elapsedSeconds > 0 &&
		(e.state.FastestCompletionSeconds == 0 || elapsedSeconds < e.state.FastestCompletionSeconds) {
		e.state.FastestCompletionSeconds = elapsedSeconds
	}

	return e.saveLocked()
}

// AwardXP adds experience and recomputes the level.
// Returns the new level and whether a level was gained.
func (e *Engine) AwardXP(amount int64) (int, bool, error) {
	if amount < 0 {
		return 0, false, fmt.Errorf("xp amount must be non-negative, got %d", amount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	oldLevel := e.state.Level
	e.awardXPLocked(amount)
	return e.state.Level, e.state.Level > oldLevel, e.saveLocked()
}

// awardXPLocked applies XP and keeps level == LevelFromXP(xp).
// The only place XP or Level is ever written.
func (e *Engine) awardXPLocked(amount int64) {
	e.state.XP += amount
	e.state.Level = LevelFromXP(e.state.XP)
	metrics.XPAwarded.Add(float64(amount))
}

// EvaluateAndUnlockAchievements runs the evaluator over every locked
// achievement in catalog order and unlocks the satisfied ones, applying
// each XP reward exactly once. Returns the newly unlocked achievements
// for the caller to surface.
func (e *Engine) EvaluateAndUnlockAchievements() ([]domain.Achievement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := domain.EvalContext{
		QuadrantCounts:           e.state.QuadrantCounts,
		FastestCompletionSeconds: e.state.FastestCompletionSeconds,
	}

	now := e.clock.Now()
	var unlocked []domain.Achievement
	for i := range e.state.Achievements {
		a := &e.state.Achievements[i]
		if !Satisfied(*a, e.state, ctx) {
			continue
		}
		at := now
		a.UnlockedAt = &at
		e.awardXPLocked(a.XPReward)
		metrics.AchievementsUnlocked.Inc()
		unlocked = append(unlocked, *a)
	}

	if len(unlocked) == 0 {
		return nil, nil
	}
	return unlocked, e.saveLocked()
}

// UnlockAchievement unlocks an achievement by hand. This is the only way
// a custom achievement ever unlocks.
func (e *Engine) UnlockAchievement(id string) (*domain.Achievement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.state.Achievements {
		a := &e.state.Achievements[i]
		if a.ID != id {
			continue
		}
		if a.Unlocked() {
			return nil, domain.ErrAchievementUnlocked
		}
		at := e.clock.Now()
		a.UnlockedAt = &at
		e.awardXPLocked(a.XPReward)
		metrics.AchievementsUnlocked.Inc()
		unlocked := *a
		return &unlocked, e.saveLocked()
	}
	return nil, domain.ErrAchievementNotFound
}

// AddCustomAchievement appends a user-defined achievement to the catalog.
func (e *Engine) AddCustomAchievement(id, title, description, icon string, xpReward int64) error {
	if xpReward < 0 {
		return fmt.Errorf("xp reward must be non-negative, got %d", xpReward)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range e.state.Achievements {
		if a.ID == id {
			return domain.ErrDuplicateAchievement
		}
	}

	e.state.Achievements = append(e.state.Achievements, domain.Achievement{
		ID:          id,
		Title:       title,
		Description: description,
		Icon:        icon,
		Condition:   domain.Condition{Type: domain.CondCustom, Description: description},
		XPReward:    xpReward,
		IsCustom:    true,
	})
	return e.saveLocked()
}

// ClaimReward marks a reward claimed. A second claim of the same reward is
// a reported error, not a silent no-op — it signals a caller bug.
func (e *Engine) ClaimReward(id string) (*domain.Reward, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.state.Rewards {
		r := &e.state.Rewards[i]
		if r.ID != id {
			continue
		}
		if r.Claimed {
			return nil, domain.ErrRewardAlreadyClaimed
		}
		at := e.clock.Now()
		r.Claimed = true
		r.ClaimedAt = &at
		metrics.RewardsClaimed.Inc()
		claimed := *r
		return &claimed, e.saveLocked()
	}
	return nil, domain.ErrRewardNotFound
}

// Reset discards all progress and restores the default catalogs.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = NewState()
	return e.saveLocked()
}

// ─── Streak & date bookkeeping ──────────────────────────────────────────────

// updateStreak recomputes the streak for an activity on the given date.
// Same day: no-op. Contiguous day: extend. Gap: reset to 1.
func (e *Engine) updateStreak(date string) {
	prev := e.state.LastActiveDate
	if prev == date {
		return
	}

	if prev != "" {
		if prevDay, err := time.Parse(dateLayout, prev); err == nil &&
			prevDay.AddDate(0, 0, 1).Format(dateLayout) == date {
			e.state.Streak++
			e.state.LastActiveDate = date
			return
		}
	}

	e.state.Streak = 1
	e.state.LastActiveDate = date
}

// pruneDates caps the calendar-date sets to the configured rolling window,
// dropping the oldest dates first.
func (e *Engine) pruneDates() {
	pruneDateSet(e.state.DailyCompletionDates, e.config.DateWindowDays)
	pruneDateSet(e.state.PerfectDayDates, e.config.DateWindowDays)
}

func pruneDateSet(set map[string]bool, limit int) {
	if limit <= 0 || len(set) <= limit {
		return
	}
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates) // ISO dates sort chronologically
	for _, d := range dates[:len(dates)-limit] {
		delete(set, d)
	}
}

// ─── Persistence ────────────────────────────────────────────────────────────

// saveLocked persists the current snapshot. On failure the in-memory
// mutation stays applied and the engine stays dirty; Save retries it.
func (e *Engine) saveLocked() error {
	if err := e.store.SaveState(e.state, e.version); err != nil {
		e.dirty = true
		return fmt.Errorf("save state: %w", err)
	}
	e.version++
	e.dirty = false
	return nil
}

// Save re-attempts persistence of a state that is applied in memory but
// not yet durable. No-op when nothing is pending.
func (e *Engine) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dirty {
		return nil
	}
	return e.saveLocked()
}

// Dirty reports whether in-memory state has outrun the persisted snapshot.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// State returns a deep copy of the current snapshot.
func (e *Engine) State() *domain.GamificationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneState(e.state)
}

// Summary is the aggregated progress view for status displays.
type Summary struct {
	Level                int     `json:"level"`
	XP                   int64   `json:"xp"`
	XPToNextLevel        int64   `json:"xp_to_next_level"`
	ProgressPct          float64 `json:"progress_pct"`
	Streak               int     `json:"streak"`
	ActiveDays           int     `json:"active_days"`
	TasksCompleted       int64   `json:"tasks_completed"`
	UnlockedAchievements int     `json:"unlocked_achievements"`
	TotalAchievements    int     `json:"total_achievements"`
	ClaimedRewards       int     `json:"claimed_rewards"`
	TotalRewards         int     `json:"total_rewards"`
}

// Summarize returns the aggregated progress view.
func (e *Engine) Summarize() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Summary{
		Level:             LevelFromXP(e.state.XP), // recompute-on-read
		XP:                e.state.XP,
		XPToNextLevel:     XPToNextLevel(e.state.XP),
		ProgressPct:       LevelProgressPct(e.state.XP),
		Streak:            e.state.Streak,
		ActiveDays:        e.state.ActiveDays,
		TasksCompleted:    e.state.TotalTasksCompleted,
		TotalAchievements: len(e.state.Achievements),
		TotalRewards:      len(e.state.Rewards),
	}
	for _, a := range e.state.Achievements {
		if a.Unlocked() {
			s.UnlockedAchievements++
		}
	}
	for _, r := range e.state.Rewards {
		if r.Claimed {
			s.ClaimedRewards++
		}
	}
	return s
}

func cloneState(s *domain.GamificationState) *domain.GamificationState {
	out := *s
	out.QuadrantCounts = make(map[domain.Quadrant]int, len(s.QuadrantCounts))
	for k, v := range s.QuadrantCounts {
		out.QuadrantCounts[k] = v
	}
	out.DailyCompletionDates = make(map[string]bool, len(s.DailyCompletionDates))
	for k := range s.DailyCompletionDates {
		out.DailyCompletionDates[k] = true
	}
	out.PerfectDayDates = make(map[string]bool, len(s.PerfectDayDates))
	for k := range s.PerfectDayDates {
		out.PerfectDayDates[k] = true
	}
	out.Achievements = append([]domain.Achievement(nil), s.Achievements...)
	out.Rewards = append([]domain.Reward(nil), s.Rewards...)
	return &out
}
