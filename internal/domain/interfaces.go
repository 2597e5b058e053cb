package domain

import (
	"context"
	"time"
)

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// StateStore abstracts durable gamification state persistence.
// The snapshot is opaque to the store; the version counter enables
// optimistic writes so a stale snapshot can never clobber a newer one.
type StateStore interface {
	// LoadState returns the persisted snapshot and its version.
	// Returns ErrStateNotFound when nothing has been saved yet.
	LoadState() (*GamificationState, int64, error)

	// SaveState persists the snapshot if the stored version still equals
	// expectedVersion. Returns ErrStaleWrite otherwise.
	SaveState(state *GamificationState, expectedVersion int64) error

	// ResetState deletes the persisted snapshot.
	ResetState() error
}

// MutationQueue abstracts the durable offline sync queue.
type MutationQueue interface {
	// Enqueue persists a new operation and returns its id.
	Enqueue(op SyncOperation) (string, error)

	// ListPending returns all queued operations ordered by timestamp ascending.
	ListPending() ([]SyncOperation, error)

	// Remove deletes an operation. Removing an unknown id is a no-op.
	Remove(id string) error

	// MarkRetry updates an operation's retry count in place.
	MarkRetry(id string, retryCount int) error

	// PurgeOlderThan removes operations older than the cutoff.
	// Returns the number of rows removed.
	PurgeOlderThan(maxAge time.Duration) (int64, error)
}

// Transport abstracts the network used for replay. HTTP-like success and
// failure signaling is all the coordinator assumes.
type Transport interface {
	Send(ctx context.Context, op SyncOperation) (SendOutcome, error)
}

// Clock is injected wherever the core needs wall time, so tests can
// control time deterministically.
type Clock interface {
	Now() time.Time

	// Today returns the current calendar date in the configured timezone
	// as "2006-01-02".
	Today() string

	// Location is the timezone used for calendar-date and cutoff decisions.
	Location() *time.Location
}
