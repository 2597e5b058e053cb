package gamify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momentum-labs/momentum/internal/app/gamify"
	"github.com/momentum-labs/momentum/internal/domain"
	"github.com/momentum-labs/momentum/internal/infra/sqlite"
	"github.com/momentum-labs/momentum/internal/testutil"
)

// newEngine creates an engine over a temporary SQLite database with a
// frozen clock.
func newEngine(t *testing.T) (*gamify.Engine, *testutil.FakeClock) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clock := testutil.NewFakeClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	engine, err := gamify.NewEngine(sqlite.NewStateStore(db, clock), clock, gamify.DefaultEngineConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, clock
}

func complete(t *testing.T, e *gamify.Engine, clock *testutil.FakeClock, quadrant domain.Quadrant) {
	t.Helper()
	task := domain.Task{ID: "t1", Title: "task", Quadrant: quadrant}
	if err := e.RecordTaskCompletion(task, clock.Now(), false); err != nil {
		t.Fatalf("record completion: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Scenario Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_FirstUnlockScenario(t *testing.T) {
	e, clock := newEngine(t)

	if got := e.State().TotalTasksCompleted; got != 0 {
		t.Fatalf("fresh state should have 0 completions, got %d", got)
	}

	complete(t, e, clock, domain.QuadrantDoFirst)
	if got := e.State().TotalTasksCompleted; got != 1 {
		t.Errorf("expected 1 completion, got %d", got)
	}

	unlocked, err := e.EvaluateAndUnlockAchievements()
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != "first_task" {
		t.Fatalf("expected first_task to unlock, got %v", unlocked)
	}

	state := e.State()
	if state.XP != 10 {
		t.Errorf("expected 10 xp from first_task, got %d", state.XP)
	}
	if state.Level != 1 {
		t.Errorf("level must stay 1 below 50 xp, got %d", state.Level)
	}
}

func TestEngine_AchievementIdempotence(t *testing.T) {
	e, clock := newEngine(t)
	complete(t, e, clock, domain.QuadrantDoFirst)

	first, err := e.EvaluateAndUnlockAchievements()
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected at least one unlock")
	}

	xpAfter := e.State().XP
	second, err := e.EvaluateAndUnlockAchievements()
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("unchanged state must unlock nothing on re-evaluation, got %v", second)
	}
	if got := e.State().XP; got != xpAfter {
		t.Errorf("xp changed on idempotent re-evaluation: %d -> %d", xpAfter, got)
	}
}

func TestEngine_XPConservation(t *testing.T) {
	e, clock := newEngine(t)

	for i := 0; i < 10; i++ {
		complete(t, e, clock, domain.QuadrantSchedule)
	}

	unlocked, err := e.EvaluateAndUnlockAchievements()
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	var sum int64
	for _, a := range unlocked {
		sum += a.XPReward
	}
	// first_task (10) + tasks_10 (50), each applied exactly once.
	if sum != 60 {
		t.Errorf("expected 60 xp of rewards, got %d (%v)", sum, unlocked)
	}
	if got := e.State().XP; got != sum {
		t.Errorf("total xp %d != sum of unlocked rewards %d", got, sum)
	}
}

func TestEngine_RewardDoubleClaim(t *testing.T) {
	e, _ := newEngine(t)

	r, err := e.ClaimReward("break_15")
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if !r.Claimed || r.ClaimedAt == nil {
		t.Error("claimed reward must carry claimed=true and a timestamp")
	}

	if _, err := e.ClaimReward("break_15"); !errors.Is(err, domain.ErrRewardAlreadyClaimed) {
		t.Errorf("second claim must fail with ErrRewardAlreadyClaimed, got %v", err)
	}
	if _, err := e.ClaimReward("no_such_reward"); !errors.Is(err, domain.ErrRewardNotFound) {
		t.Errorf("unknown reward must fail with ErrRewardNotFound, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_StreakContiguity(t *testing.T) {
	e, clock := newEngine(t)

	// Days D, D+1, D+2 → streak 3.
	for i := 0; i < 3; i++ {
		complete(t, e, clock, domain.QuadrantDoFirst)
		clock.Advance(24 * time.Hour)
	}
	if got := e.State().Streak; got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}

	// Skip a day → reset to 1 on the next completion.
	clock.Advance(24 * time.Hour)
	complete(t, e, clock, domain.QuadrantDoFirst)
	if got := e.State().Streak; got != 1 {
		t.Errorf("expected streak reset to 1 after a gap, got %d", got)
	}
}

func TestEngine_StreakSameDayNoop(t *testing.T) {
	e, clock := newEngine(t)

	complete(t, e, clock, domain.QuadrantDoFirst)
	clock.Advance(2 * time.Hour)
	complete(t, e, clock, domain.QuadrantDoFirst)

	state := e.State()
	if state.Streak != 1 {
		t.Errorf("same-day completions must not extend the streak, got %d", state.Streak)
	}
	if state.ActiveDays != 1 {
		t.Errorf("expected 1 active day, got %d", state.ActiveDays)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Counter Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_EarlyBirdCutoff(t *testing.T) {
	e, clock := newEngine(t)

	clock.Set(time.Date(2026, 7, 1, 8, 30, 0, 0, time.UTC))
	complete(t, e, clock, domain.QuadrantDoFirst)
	if got := e.State().EarlyBirdCount; got != 1 {
		t.Errorf("8:30 completion must count as early bird, got %d", got)
	}

	clock.Set(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))
	complete(t, e, clock, domain.QuadrantDoFirst)
	if got := e.State().EarlyBirdCount; got != 1 {
		t.Errorf("9:00 completion is not early, count should stay 1, got %d", got)
	}
}

func TestEngine_PerfectDayCountedOnce(t *testing.T) {
	e, clock := newEngine(t)
	task := domain.Task{ID: "t", Title: "t", Quadrant: domain.QuadrantDoFirst}

	if err := e.RecordTaskCompletion(task, clock.Now(), true); err != nil {
		t.Fatalf("record: %v", err)
	}
	// A second completion landing after the day is already perfect.
	if err := e.RecordTaskCompletion(task, clock.Now(), true); err != nil {
		t.Fatalf("record: %v", err)
	}

	if got := e.State().PerfectDays; got != 1 {
		t.Errorf("a day counts as perfect at most once, got %d", got)
	}
}

func TestEngine_QuadrantCounters(t *testing.T) {
	e, clock := newEngine(t)

	complete(t, e, clock, domain.QuadrantDoFirst)
	complete(t, e, clock, domain.QuadrantDoFirst)
	complete(t, e, clock, domain.QuadrantEliminate)

	state := e.State()
	if got := state.QuadrantCounts[domain.QuadrantDoFirst]; got != 2 {
		t.Errorf("expected 2 do_first completions, got %d", got)
	}
	if got := state.QuadrantCounts[domain.QuadrantEliminate]; got != 1 {
		t.Errorf("expected 1 eliminate completion, got %d", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Timer Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_TimerFastestBookkeeping(t *testing.T) {
	e, _ := newEngine(t)

	// Zero-length sessions never become the fastest completion.
	if err := e.RecordTimerSession(0); err != nil {
		t.Fatalf("zero session: %v", err)
	}
	if got := e.State().FastestCompletionSeconds; got != 0 {
		t.Fatalf("no fastest yet, got %d", got)
	}

	for _, secs := range []int64{600, 200, 300} {
		if err := e.RecordTimerSession(secs); err != nil {
			t.Fatalf("session %d: %v", secs, err)
		}
	}

	state := e.State()
	if state.FastestCompletionSeconds != 200 {
		t.Errorf("expected fastest 200, got %d", state.FastestCompletionSeconds)
	}
	if state.TotalTimerSeconds != 1100 {
		t.Errorf("expected 1100 total seconds, got %d", state.TotalTimerSeconds)
	}
}

func TestEngine_SpeedDemonUnlocksViaTimer(t *testing.T) {
	e, _ := newEngine(t)

	if err := e.RecordTimerSession(120); err != nil {
		t.Fatalf("session: %v", err)
	}
	unlocked, err := e.EvaluateAndUnlockAchievements()
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	found := false
	for _, a := range unlocked {
		if a.ID == "speed_demon" {
			found = true
		}
	}
	if !found {
		t.Errorf("120s fastest completion should unlock speed_demon, got %v", unlocked)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_AwardXPRecomputesLevel(t *testing.T) {
	e, _ := newEngine(t)

	level, leveledUp, err := e.AwardXP(50)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if level != 2 || !leveledUp {
		t.Errorf("50 xp must reach level 2, got level=%d leveledUp=%v", level, leveledUp)
	}

	if _, _, err := e.AwardXP(-5); err == nil {
		t.Error("negative xp must be rejected")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Custom Achievement Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEngine_CustomAchievementManualUnlock(t *testing.T) {
	e, clock := newEngine(t)

	if err := e.AddCustomAchievement("ship_v1", "Ship v1", "Release the first version", "🚀", 100); err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if err := e.AddCustomAchievement("ship_v1", "Dup", "dup", "x", 1); !errors.Is(err, domain.ErrDuplicateAchievement) {
		t.Errorf("duplicate id must be rejected, got %v", err)
	}

	// Auto-evaluation never touches custom achievements.
	complete(t, e, clock, domain.QuadrantDoFirst)
	unlocked, _ := e.EvaluateAndUnlockAchievements()
	for _, a := range unlocked {
		if a.ID == "ship_v1" {
			t.Fatal("custom achievement must not auto-unlock")
		}
	}

	xpBefore := e.State().XP
	a, err := e.UnlockAchievement("ship_v1")
	if err != nil {
		t.Fatalf("manual unlock: %v", err)
	}
	if !a.Unlocked() {
		t.Error("manual unlock must set the timestamp")
	}
	if got := e.State().XP; got != xpBefore+100 {
		t.Errorf("expected %d xp after manual unlock, got %d", xpBefore+100, got)
	}

	if _, err := e.UnlockAchievement("ship_v1"); !errors.Is(err, domain.ErrAchievementUnlocked) {
		t.Errorf("second manual unlock must fail, got %v", err)
	}
	if _, err := e.UnlockAchievement("nope"); !errors.Is(err, domain.ErrAchievementNotFound) {
		t.Errorf("unknown achievement must fail, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Persistence Tests
// ═══════════════════════════════════════════════════════════════════════════

// flakyStore fails saves on demand so the applied-but-not-durable contract
// can be exercised.
type flakyStore struct {
	state   *domain.GamificationState
	version int64
	fail    bool
}

func (s *flakyStore) LoadState() (*domain.GamificationState, int64, error) {
	if s.state == nil {
		return nil, 0, domain.ErrStateNotFound
	}
	return s.state, s.version, nil
}

func (s *flakyStore) SaveState(state *domain.GamificationState, expectedVersion int64) error {
	if s.fail {
		return errors.New("store busy")
	}
	if expectedVersion != s.version {
		return domain.ErrStaleWrite
	}
	s.state = state
	s.version = expectedVersion + 1
	return nil
}

func (s *flakyStore) ResetState() error {
	s.state = nil
	s.version = 0
	return nil
}

func TestEngine_FailedSaveIsRetryable(t *testing.T) {
	store := &flakyStore{}
	clock := testutil.NewFakeClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	e, err := gamify.NewEngine(store, clock, gamify.DefaultEngineConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	store.fail = true
	task := domain.Task{ID: "t", Title: "t", Quadrant: domain.QuadrantDoFirst}
	if err := e.RecordTaskCompletion(task, clock.Now(), false); err == nil {
		t.Fatal("expected save failure to surface")
	}

	// The mutation is applied in memory and flagged for retry.
	if got := e.State().TotalTasksCompleted; got != 1 {
		t.Fatalf("in-memory mutation must survive a failed save, got %d completions", got)
	}
	if !e.Dirty() {
		t.Fatal("engine must report dirty after a failed save")
	}

	store.fail = false
	if err := e.Save(); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if e.Dirty() {
		t.Error("engine must be clean after a successful retry")
	}
	if store.state.TotalTasksCompleted != 1 {
		t.Errorf("persisted snapshot missing the mutation: %d", store.state.TotalTasksCompleted)
	}
}

func TestEngine_StateSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	clock := testutil.NewFakeClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))

	e, err := gamify.NewEngine(sqlite.NewStateStore(db, clock), clock, gamify.DefaultEngineConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	task := domain.Task{ID: "t", Title: "t", Quadrant: domain.QuadrantDoFirst}
	if err := e.RecordTaskCompletion(task, clock.Now(), false); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := e.EvaluateAndUnlockAchievements(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	db.Close()

	db2, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	e2, err := gamify.NewEngine(sqlite.NewStateStore(db2, clock), clock, gamify.DefaultEngineConfig())
	if err != nil {
		t.Fatalf("reload engine: %v", err)
	}

	state := e2.State()
	if state.TotalTasksCompleted != 1 {
		t.Errorf("expected 1 completion after reload, got %d", state.TotalTasksCompleted)
	}
	if state.XP != 10 {
		t.Errorf("expected 10 xp after reload, got %d", state.XP)
	}
}

func TestEngine_Reset(t *testing.T) {
	e, clock := newEngine(t)
	complete(t, e, clock, domain.QuadrantDoFirst)
	if _, err := e.EvaluateAndUnlockAchievements(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if err := e.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	state := e.State()
	if state.XP != 0 || state.TotalTasksCompleted != 0 || state.Streak != 0 {
		t.Errorf("reset must restore zeroed counters, got %+v", state)
	}
	for _, a := range state.Achievements {
		if a.Unlocked() {
			t.Errorf("achievement %s still unlocked after reset", a.ID)
		}
	}
}
