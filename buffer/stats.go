package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector defines the interface for collecting metrics about a Buffer.
// Implementations can store metrics in memory or export them to a monitoring
// system; see obs.Metrics for a Prometheus one. The StatsCollector is
// optional - if not provided, no statistics are collected.
//
// Methods are called without the Buffer lock held, so implementations must be
// safe for concurrent use.
type StatsCollector interface {
	// RecordItemRead is called for each item read from the source.
	RecordItemRead()

	// RecordIntakeBlocked is called each time intake pauses because the
	// buffer is full.
	RecordIntakeBlocked()

	// RecordQueueLength is called when the number of buffered items changes.
	RecordQueueLength(n int)

	// RecordRelease is called when a batch is released. elapsed is the time
	// since the previous release.
	RecordRelease(reason ReleaseReason, batchSize int, elapsed time.Duration)

	// RecordConfirm is called when a batch is confirmed.
	RecordConfirm(batchSize int)

	// RecordReturn is called when a batch is returned. suppression is the
	// backoff interval it caused, zero if none.
	RecordReturn(batchSize int, suppression time.Duration)

	// RecordSourceError is called when the source fails.
	RecordSourceError()

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about a Buffer.
type Stats struct {
	// ItemsRead is the total number of items read from the source.
	ItemsRead uint64

	// IntakeBlocked is the number of times intake paused on a full buffer.
	IntakeBlocked uint64

	// BatchesReleased is the total number of batches released.
	BatchesReleased uint64

	// SoftCapReleases, TimeReleases and ShutdownReleases split
	// BatchesReleased by reason.
	SoftCapReleases  uint64
	TimeReleases     uint64
	ShutdownReleases uint64

	// BatchesConfirmed and ItemsConfirmed count confirmed batches and their items.
	BatchesConfirmed uint64
	ItemsConfirmed   uint64

	// BatchesReturned and ItemsReturned count returned batches and their items.
	BatchesReturned uint64
	ItemsReturned   uint64

	// SourceErrors is the number of source failures.
	SourceErrors uint64

	// TotalSuppression is the cumulative backoff applied by returns.
	TotalSuppression time.Duration

	// MinBatchSize is the smallest batch released.
	MinBatchSize int

	// MaxBatchSize is the largest batch released.
	MaxBatchSize int

	// MaxQueueLength is the highest queue length seen.
	MaxQueueLength int

	// StartTime is when statistics collection began.
	StartTime time.Time

	// LastUpdateTime is when statistics were last updated.
	LastUpdateTime time.Time
}

// NoOpStatsCollector is a stats collector that discards all metrics.
// This is the default stats collector when none is specified.
type NoOpStatsCollector struct{}

// RecordItemRead implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordItemRead() {}

// RecordIntakeBlocked implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordIntakeBlocked() {}

// RecordQueueLength implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordQueueLength(int) {}

// RecordRelease implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordRelease(ReleaseReason, int, time.Duration) {}

// RecordConfirm implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordConfirm(int) {}

// RecordReturn implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordReturn(int, time.Duration) {}

// RecordSourceError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordSourceError() {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is a simple in-memory implementation of StatsCollector.
// All operations are thread-safe.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	// Atomic counters for lock-free updates
	itemsRead     uint64
	intakeBlocked uint64
	sourceErrors  uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	now := time.Now()
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      now,
			LastUpdateTime: now,
		},
	}
}

// RecordItemRead implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordItemRead() {
	atomic.AddUint64(&b.itemsRead, 1)
}

// RecordIntakeBlocked implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordIntakeBlocked() {
	atomic.AddUint64(&b.intakeBlocked, 1)
}

// RecordSourceError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordSourceError() {
	atomic.AddUint64(&b.sourceErrors, 1)
}

// RecordQueueLength implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordQueueLength(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.stats.MaxQueueLength {
		b.stats.MaxQueueLength = n
	}
}

// RecordRelease implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordRelease(reason ReleaseReason, batchSize int, _ time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.BatchesReleased++
	switch reason {
	case SoftCapReached:
		b.stats.SoftCapReleases++
	case TimeElapsed:
		b.stats.TimeReleases++
	case Shutdown:
		b.stats.ShutdownReleases++
	}

	if batchSize < b.stats.MinBatchSize || b.stats.MinBatchSize == 0 {
		b.stats.MinBatchSize = batchSize
	}
	if batchSize > b.stats.MaxBatchSize {
		b.stats.MaxBatchSize = batchSize
	}
}

// RecordConfirm implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordConfirm(batchSize int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.BatchesConfirmed++
	b.stats.ItemsConfirmed += uint64(batchSize)
}

// RecordReturn implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordReturn(batchSize int, suppression time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.BatchesReturned++
	b.stats.ItemsReturned += uint64(batchSize)
	b.stats.TotalSuppression += suppression
}

// GetStats implements the StatsCollector interface.
// It returns a snapshot of the current statistics.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.ItemsRead = atomic.LoadUint64(&b.itemsRead)
	stats.IntakeBlocked = atomic.LoadUint64(&b.intakeBlocked)
	stats.SourceErrors = atomic.LoadUint64(&b.sourceErrors)
	return stats
}

// AverageBatchSize returns the average size of resolved batches.
// Returns 0 if no batches have been resolved.
func (s *Stats) AverageBatchSize() float64 {
	resolved := s.BatchesConfirmed + s.BatchesReturned
	if resolved == 0 {
		return 0
	}
	return float64(s.ItemsConfirmed+s.ItemsReturned) / float64(resolved)
}

// ReturnRate returns the percentage of resolved batches that were returned.
// Returns 0 if no batches have been resolved.
func (s *Stats) ReturnRate() float64 {
	total := s.BatchesConfirmed + s.BatchesReturned
	if total == 0 {
		return 0
	}
	return float64(s.BatchesReturned) / float64(total) * 100
}

// Duration returns the total duration since statistics collection started.
func (s *Stats) Duration() time.Duration {
	return s.LastUpdateTime.Sub(s.StartTime)
}
