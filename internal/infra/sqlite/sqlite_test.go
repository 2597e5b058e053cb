package sqlite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momentum-labs/momentum/internal/domain"
	"github.com/momentum-labs/momentum/internal/infra/sqlite"
	"github.com/momentum-labs/momentum/internal/testutil"
)

func testDB(t *testing.T) (*sqlite.DB, *testutil.FakeClock) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, testutil.NewFakeClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
}

// ═══════════════════════════════════════════════════════════════════════════
// StateStore Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStateStore_LoadEmpty(t *testing.T) {
	db, clock := testDB(t)
	store := sqlite.NewStateStore(db, clock)

	if _, _, err := store.LoadState(); !errors.Is(err, domain.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound on a fresh database, got %v", err)
	}
}

func TestStateStore_SaveLoadRoundTrip(t *testing.T) {
	db, clock := testDB(t)
	store := sqlite.NewStateStore(db, clock)

	state := &domain.GamificationState{
		XP:                  120,
		Level:               2,
		Streak:              4,
		LastActiveDate:      "2026-07-01",
		TotalTasksCompleted: 17,
		QuadrantCounts:      map[domain.Quadrant]int{domain.QuadrantDoFirst: 9},
	}
	if err := store.SaveState(state, 0); err != nil {
		t.Fatalf("first save: %v", err)
	}

	got, version, err := store.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if version != 1 {
		t.Errorf("first save should produce version 1, got %d", version)
	}
	if got.XP != 120 || got.Streak != 4 || got.TotalTasksCompleted != 17 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.QuadrantCounts[domain.QuadrantDoFirst] != 9 {
		t.Errorf("quadrant counts lost in round-trip: %+v", got.QuadrantCounts)
	}
}

func TestStateStore_VersionedSave(t *testing.T) {
	db, clock := testDB(t)
	store := sqlite.NewStateStore(db, clock)

	state := &domain.GamificationState{XP: 10, Level: 1}
	if err := store.SaveState(state, 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	state.XP = 20
	if err := store.SaveState(state, 1); err != nil {
		t.Fatalf("update at version 1: %v", err)
	}

	// A writer holding the old version must be rejected.
	state.XP = 999
	if err := store.SaveState(state, 1); !errors.Is(err, domain.ErrStaleWrite) {
		t.Fatalf("stale update must fail with ErrStaleWrite, got %v", err)
	}

	got, version, err := store.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if version != 2 || got.XP != 20 {
		t.Errorf("expected version 2 with xp 20, got version %d xp %d", version, got.XP)
	}

	// A second first-save must also be rejected.
	if err := store.SaveState(state, 0); !errors.Is(err, domain.ErrStaleWrite) {
		t.Errorf("duplicate insert must fail with ErrStaleWrite, got %v", err)
	}
}

func TestStateStore_Reset(t *testing.T) {
	db, clock := testDB(t)
	store := sqlite.NewStateStore(db, clock)

	if err := store.SaveState(&domain.GamificationState{XP: 5}, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.ResetState(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, _, err := store.LoadState(); !errors.Is(err, domain.ErrStateNotFound) {
		t.Errorf("state must be gone after reset, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Queue Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestQueue_EnqueueAssignsIdentity(t *testing.T) {
	db, clock := testDB(t)
	q := sqlite.NewQueue(db, clock)

	id, err := q.Enqueue(domain.SyncOperation{
		URL:    "/api/tasks",
		Method: "POST",
		// Caller-supplied values that the queue must own instead.
		ID:         "caller-chosen",
		RetryCount: 7,
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if id == "" || id == "caller-chosen" {
		t.Errorf("queue must assign its own id, got %q", id)
	}

	pending, err := q.ListPending()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending op, got %d", len(pending))
	}
	op := pending[0]
	if op.ID != id || op.RetryCount != 0 {
		t.Errorf("expected id %q with retry_count 0, got %+v", id, op)
	}
	if !op.Timestamp.Equal(clock.Now()) {
		t.Errorf("zero timestamp must default to the clock, got %v", op.Timestamp)
	}
}

func TestQueue_ListPendingOldestFirst(t *testing.T) {
	db, clock := testDB(t)
	q := sqlite.NewQueue(db, clock)

	base := clock.Now()
	// Enqueued out of chronological order on purpose.
	for _, d := range []time.Duration{2 * time.Second, 0, time.Second} {
		op := domain.SyncOperation{URL: "/api/op", Method: "POST", Timestamp: base.Add(d)}
		if _, err := q.Enqueue(op); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	pending, err := q.ListPending()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(pending); i++ {
		if pending[i].Timestamp.Before(pending[i-1].Timestamp) {
			t.Fatalf("pending ops out of order: %v before %v",
				pending[i].Timestamp, pending[i-1].Timestamp)
		}
	}
}

func TestQueue_HeadersRoundTrip(t *testing.T) {
	db, clock := testDB(t)
	q := sqlite.NewQueue(db, clock)

	op := domain.SyncOperation{
		URL:     "/api/tasks",
		Method:  "PUT",
		Headers: map[string]string{"Authorization": "Bearer tok", "Content-Type": "application/json"},
		Body:    []byte(`{"done":true}`),
	}
	if _, err := q.Enqueue(op); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	pending, _ := q.ListPending()
	got := pending[0]
	if got.Headers["Authorization"] != "Bearer tok" {
		t.Errorf("headers lost in round-trip: %+v", got.Headers)
	}
	if string(got.Body) != `{"done":true}` {
		t.Errorf("body lost in round-trip: %s", got.Body)
	}
}

func TestQueue_RemoveUnknownIsNoop(t *testing.T) {
	db, clock := testDB(t)
	q := sqlite.NewQueue(db, clock)

	if err := q.Remove("does-not-exist"); err != nil {
		t.Errorf("removing an unknown id must be a no-op, got %v", err)
	}
}

func TestQueue_MarkRetry(t *testing.T) {
	db, clock := testDB(t)
	q := sqlite.NewQueue(db, clock)

	id, err := q.Enqueue(domain.SyncOperation{URL: "/api/x", Method: "POST"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := q.MarkRetry(id, 2); err != nil {
		t.Fatalf("mark retry: %v", err)
	}
	pending, _ := q.ListPending()
	if pending[0].RetryCount != 2 {
		t.Errorf("expected retry_count 2, got %d", pending[0].RetryCount)
	}

	if err := q.MarkRetry("missing", 1); !errors.Is(err, domain.ErrOperationNotFound) {
		t.Errorf("unknown id must fail with ErrOperationNotFound, got %v", err)
	}
}

func TestQueue_PurgeOlderThan(t *testing.T) {
	db, clock := testDB(t)
	q := sqlite.NewQueue(db, clock)

	old := domain.SyncOperation{URL: "/old", Method: "POST", Timestamp: clock.Now().Add(-48 * time.Hour)}
	fresh := domain.SyncOperation{URL: "/fresh", Method: "POST", Timestamp: clock.Now()}
	for _, op := range []domain.SyncOperation{old, fresh} {
		if _, err := q.Enqueue(op); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	purged, err := q.PurgeOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected 1 purged op, got %d", purged)
	}

	pending, _ := q.ListPending()
	if len(pending) != 1 || pending[0].URL != "/fresh" {
		t.Errorf("only the fresh op should survive, got %+v", pending)
	}

	if n, _ := q.Len(); n != 1 {
		t.Errorf("Len mismatch: %d", n)
	}
}
