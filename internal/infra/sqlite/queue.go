package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/momentum-labs/momentum/internal/domain"
	"github.com/momentum-labs/momentum/internal/infra/metrics"
)

// Queue adapts DB to the domain.MutationQueue interface: a durable FIFO of
// pending network operations that survives restarts and offline periods.
type Queue struct {
	db    *DB
	clock domain.Clock
}

// NewQueue creates a mutation queue over the database.
func NewQueue(db *DB, clock domain.Clock) *Queue {
	return &Queue{db: db, clock: clock}
}

// Enqueue persists a new operation with a fresh id, zero retries, and the
// current timestamp. Returns the assigned id.
func (q *Queue) Enqueue(op domain.SyncOperation) (string, error) {
	op.ID = uuid.NewString()
	op.RetryCount = 0
	if op.Timestamp.IsZero() {
		op.Timestamp = q.clock.Now()
	}

	headers, err := json.Marshal(op.Headers)
	if err != nil {
		return "", fmt.Errorf("encode headers: %w", err)
	}

	_, err = q.db.db.Exec(
		`INSERT INTO sync_queue (id, url, method, headers, body, timestamp, retry_count)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		op.ID, op.URL, op.Method, string(headers), op.Body, op.Timestamp.UnixMilli(),
	)
	if err != nil {
		return "", err
	}

	metrics.SyncEnqueued.Inc()
	return op.ID, nil
}

// ListPending returns all queued operations, oldest first, so replay
// preserves the causal order of same-resource mutations.
func (q *Queue) ListPending() ([]domain.SyncOperation, error) {
	rows, err := q.db.db.Query(
		`SELECT id, url, method, headers, body, timestamp, retry_count
		 FROM sync_queue ORDER BY timestamp ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []domain.SyncOperation
	for rows.Next() {
		var op domain.SyncOperation
		var headers string
		var ts int64
		if err := rows.Scan(&op.ID, &op.URL, &op.Method, &headers, &op.Body, &ts, &op.RetryCount); err != nil {
			return nil, err
		}
		if headers != "" {
			if err := json.Unmarshal([]byte(headers), &op.Headers); err != nil {
				return nil, fmt.Errorf("decode headers for %s: %w", op.ID, err)
			}
		}
		op.Timestamp = time.UnixMilli(ts)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// Remove deletes an operation. Removing an unknown id is a no-op, since
// replay and manual cleanup can race.
func (q *Queue) Remove(id string) error {
	_, err := q.db.db.Exec(`DELETE FROM sync_queue WHERE id = ?`, id)
	return err
}

// MarkRetry updates an operation's retry count in place.
func (q *Queue) MarkRetry(id string, retryCount int) error {
	result, err := q.db.db.Exec(
		`UPDATE sync_queue SET retry_count = ? WHERE id = ?`, retryCount, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrOperationNotFound
	}
	return nil
}

// PurgeOlderThan removes operations older than the cutoff. Leak prevention
// independent of replay success: stale un-replayable operations must not
// accumulate forever.
func (q *Queue) PurgeOlderThan(maxAge time.Duration) (int64, error) {
	cutoff := q.clock.Now().Add(-maxAge).UnixMilli()
	result, err := q.db.db.Exec(`DELETE FROM sync_queue WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Len returns the number of queued operations.
func (q *Queue) Len() (int, error) {
	var n int
	err := q.db.db.QueryRow(`SELECT COUNT(*) FROM sync_queue`).Scan(&n)
	return n, err
}
