// Package metrics provides Prometheus metrics for Momentum.
// Counters and gauges for the gamification engine and the offline
// sync queue, exposed on /metrics when enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Gamification ───────────────────────────────────────────────────────────

// TasksRecorded tracks recorded task completions by quadrant.
var TasksRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "momentum",
	Name:      "tasks_recorded_total",
	Help:      "Total task completions recorded.",
}, []string{"quadrant"})

// XPAwarded tracks total experience points awarded.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "momentum",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded.",
})

// AchievementsUnlocked tracks achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "momentum",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// RewardsClaimed tracks reward claims.
var RewardsClaimed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "momentum",
	Name:      "rewards_claimed_total",
	Help:      "Total rewards claimed.",
})

// ─── Offline Sync ───────────────────────────────────────────────────────────

// SyncEnqueued tracks operations added to the mutation queue.
var SyncEnqueued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "momentum",
	Name:      "sync_enqueued_total",
	Help:      "Total operations enqueued for deferred delivery.",
})

// SyncReplayed tracks replay outcomes by result.
var SyncReplayed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "momentum",
	Name:      "sync_replayed_total",
	Help:      "Replay attempts by outcome.",
}, []string{"outcome"}) // success | retry | exhausted

// SyncQueueDepth tracks operations currently pending replay.
var SyncQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "momentum",
	Name:      "sync_queue_depth",
	Help:      "Operations currently pending in the mutation queue.",
})
