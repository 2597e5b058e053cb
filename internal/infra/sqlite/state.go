package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/momentum-labs/momentum/internal/domain"
)

// StateStore adapts DB to the domain.StateStore interface with a clock
// for the saved_at column.
type StateStore struct {
	db    *DB
	clock domain.Clock
}

// NewStateStore creates a versioned snapshot store over the database.
func NewStateStore(db *DB, clock domain.Clock) *StateStore {
	return &StateStore{db: db, clock: clock}
}

// LoadState returns the persisted snapshot and its version.
func (s *StateStore) LoadState() (*domain.GamificationState, int64, error) {
	var version int64
	var blob []byte
	err := s.db.db.QueryRow(
		`SELECT version, snapshot FROM gamify_state WHERE id = 1`,
	).Scan(&version, &blob)
	if err == sql.ErrNoRows {
		return nil, 0, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	var state domain.GamificationState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, 0, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, version, nil
}

// SaveState persists the snapshot if the stored version still equals
// expectedVersion. An expectedVersion of 0 inserts the first snapshot.
// Returns domain.ErrStaleWrite when another writer got there first.
func (s *StateStore) SaveState(state *domain.GamificationState, expectedVersion int64) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	now := s.clock.Now().Unix()

	if expectedVersion == 0 {
		_, err := s.db.db.Exec(
			`INSERT INTO gamify_state (id, version, snapshot, saved_at) VALUES (1, 1, ?, ?)`,
			blob, now,
		)
		if err != nil {
			// A concurrent first save already inserted row 1.
			return domain.ErrStaleWrite
		}
		return nil
	}

	result, err := s.db.db.Exec(
		`UPDATE gamify_state SET version = version + 1, snapshot = ?, saved_at = ?
		 WHERE id = 1 AND version = ?`,
		blob, now, expectedVersion,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrStaleWrite
	}
	return nil
}

// ResetState deletes the persisted snapshot.
func (s *StateStore) ResetState() error {
	_, err := s.db.db.Exec(`DELETE FROM gamify_state WHERE id = 1`)
	return err
}

// SavedAt returns when the snapshot was last persisted (zero if never).
func (s *StateStore) SavedAt() (time.Time, error) {
	var unix int64
	err := s.db.db.QueryRow(`SELECT saved_at FROM gamify_state WHERE id = 1`).Scan(&unix)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}
