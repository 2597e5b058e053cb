package domain

import "time"

// ─── Offline Sync Types ─────────────────────────────────────────────────────

// SyncOperation is a pending network mutation captured while offline.
// Owned by the mutation queue from enqueue until removal.
type SyncOperation struct {
	ID         string            `json:"id"`
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       []byte            `json:"body,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	RetryCount int               `json:"retry_count"`
}

// MaxReplayAttempts is the hard retry ceiling. An operation that fails this
// many times is removed from the queue and counted as permanently failed.
const MaxReplayAttempts = 3

// DrainReport summarizes one replay pass over the mutation queue.
type DrainReport struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Requeued  int `json:"requeued"` // failed, left for the next drain

	// PermanentFailures counts operations dropped after MaxReplayAttempts.
	// Surfaced here and logged — never silently discarded.
	PermanentFailures int      `json:"permanent_failures"`
	FailedIDs         []string `json:"failed_ids,omitempty"`
}

// SendOutcome is the transport's view of one delivery attempt.
type SendOutcome struct {
	Status int  `json:"status"`
	OK     bool `json:"ok"` // 2xx
}
