// Package syncer drains the offline mutation queue against the network.
// Delivery is at-least-once with a hard retry ceiling: the coordinator
// guarantees bounded retry and eventual garbage collection, not
// transactional delivery — idempotence is the server's job.
package syncer

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/momentum-labs/momentum/internal/domain"
	"github.com/momentum-labs/momentum/internal/infra/metrics"
)

// Config tunes the replay coordinator.
type Config struct {
	MaxRetries int           // attempts before an operation is dropped
	PurgeAge   time.Duration // operations older than this are purged before draining
}

// DefaultConfig returns production replay defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: domain.MaxReplayAttempts,
		PurgeAge:   14 * 24 * time.Hour,
	}
}

// Coordinator replays queued operations when connectivity returns.
// A single in-flight flag rejects overlapping drain passes so the same
// operation is never delivered twice concurrently.
type Coordinator struct {
	queue     domain.MutationQueue
	transport domain.Transport
	config    Config

	draining atomic.Bool

	// Lifetime tallies, observable by callers.
	totalSucceeded int64
	totalExhausted int64
}

// NewCoordinator creates a replay coordinator.
func NewCoordinator(queue domain.MutationQueue, transport domain.Transport, cfg Config) *Coordinator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = domain.MaxReplayAttempts
	}
	return &Coordinator{queue: queue, transport: transport, config: cfg}
}

// Drain replays all pending operations, oldest first, one at a time.
// Sequential on purpose: it preserves relative ordering and avoids
// overwhelming a possibly-just-recovered link. Returns ErrDrainInProgress
// if another drain pass is already running.
func (c *Coordinator) Drain(ctx context.Context) (domain.DrainReport, error) {
	var report domain.DrainReport

	if !c.draining.CompareAndSwap(false, true) {
		return report, domain.ErrDrainInProgress
	}
	defer c.draining.Store(false)

	if c.config.PurgeAge > 0 {
		if n, err := c.queue.PurgeOlderThan(c.config.PurgeAge); err != nil {
			log.Printf("sync: purge failed: %v", err)
		} else if n > 0 {
			log.Printf("sync: purged %d stale operation(s)", n)
		}
	}

	pending, err := c.queue.ListPending()
	if err != nil {
		return report, fmt.Errorf("list pending: %w", err)
	}

	for _, op := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Attempted++

		outcome, sendErr := c.transport.Send(ctx, op)
		if sendErr == nil && outcome.OK {
			if err := c.queue.Remove(op.ID); err != nil {
				return report, fmt.Errorf("remove %s: %w", op.ID, err)
			}
			report.Succeeded++
			atomic.AddInt64(&c.totalSucceeded, 1)
			metrics.SyncReplayed.WithLabelValues("success").Inc()
			continue
		}

		op.RetryCount++
		if op.RetryCount >= c.config.MaxRetries {
			// Ceiling reached — drop the operation, but never silently:
			// it lands in the failure tally and the log.
			if err := c.queue.Remove(op.ID); err != nil {
				return report, fmt.Errorf("remove exhausted %s: %w", op.ID, err)
			}
			report.PermanentFailures++
			report.FailedIDs = append(report.FailedIDs, op.ID)
			atomic.AddInt64(&c.totalExhausted, 1)
			metrics.SyncReplayed.WithLabelValues("exhausted").Inc()
			log.Printf("sync: dropping %s %s after %d attempts (last status %d, err %v)",
				op.Method, op.URL, op.RetryCount, outcome.Status, sendErr)
			continue
		}

		if err := c.queue.MarkRetry(op.ID, op.RetryCount); err != nil {
			return report, fmt.Errorf("mark retry %s: %w", op.ID, err)
		}
		report.Requeued++
		metrics.SyncReplayed.WithLabelValues("retry").Inc()
	}

	c.updateDepth()
	return report, nil
}

// Stats summarizes lifetime coordinator activity.
type Stats struct {
	TotalSucceeded int64 `json:"total_succeeded"`
	TotalExhausted int64 `json:"total_exhausted"` // dropped after MaxRetries
	Draining       bool  `json:"draining"`
}

// Stats returns lifetime replay tallies.
func (c *Coordinator) Stats() Stats {
	return Stats{
		TotalSucceeded: atomic.LoadInt64(&c.totalSucceeded),
		TotalExhausted: atomic.LoadInt64(&c.totalExhausted),
		Draining:       c.draining.Load(),
	}
}

// updateDepth refreshes the queue depth gauge when the backing queue can
// report its length.
func (c *Coordinator) updateDepth() {
	type lener interface{ Len() (int, error) }
	if q, ok := c.queue.(lener); ok {
		if n, err := q.Len(); err == nil {
			metrics.SyncQueueDepth.Set(float64(n))
		}
	}
}
