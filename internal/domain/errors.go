package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Reward errors
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")

	// Achievement errors
	ErrAchievementNotFound  = errors.New("achievement not found")
	ErrAchievementUnlocked  = errors.New("achievement already unlocked")
	ErrDuplicateAchievement = errors.New("achievement id already exists")

	// Persistence errors
	ErrStateNotFound = errors.New("no gamification state persisted yet")
	ErrStaleWrite    = errors.New("stale write rejected: state modified by another writer")

	// Sync errors
	ErrDrainInProgress   = errors.New("sync drain already in progress")
	ErrOperationNotFound = errors.New("sync operation not found")
)
