package buffer

import "time"

// releaseReason checks the release triggers at now, in priority order:
//
//	SoftCap > backoff suppression > Shutdown > ReleaseAfter
//
// The SoftCap trigger ignores suppression. Shutdown flushes what's left once
// intake has ended, without waiting for ReleaseAfter. It fires only for the
// first release after intake ended; items returned after that wait for
// ReleaseAfter like any other.
//
// Must be called with b.mu held.
func (b *Buffer[T]) releaseReason(now time.Time) (ReleaseReason, bool) {
	n := b.queue.len()
	if n == 0 {
		return 0, false
	}

	if b.config.SoftCap > 0 && uint(n) >= b.config.SoftCap {
		return SoftCapReached, true
	}
	if b.backoff.suppressing(now) {
		return 0, false
	}
	if b.intakeDone && !b.flushed {
		return Shutdown, true
	}
	if now.Sub(b.lastRelease) >= b.config.ReleaseAfter {
		return TimeElapsed, true
	}
	return 0, false
}

// release drains the queue into a new Batch and restarts the ReleaseAfter
// timer. Must be called with b.mu held.
func (b *Buffer[T]) release(now time.Time, reason ReleaseReason) *Batch[T] {
	b.seq++
	if b.intakeDone {
		b.flushed = true
	}
	items := b.queue.drain()
	b.inFlight += len(items)

	batch := &Batch[T]{
		items:      items,
		reason:     reason,
		elapsed:    now.Sub(b.lastRelease),
		seq:        b.seq,
		releasedAt: now,
		owner:      b,
	}
	b.lastRelease = now
	return batch
}

// nextDeadline returns how long until the time-based triggers could fire. It
// returns false if nothing is buffered, in which case only a wake signal can
// change the outcome. Must be called with b.mu held.
func (b *Buffer[T]) nextDeadline(now time.Time) (time.Duration, bool) {
	if b.queue.len() == 0 {
		return 0, false
	}

	deadline := b.lastRelease.Add(b.config.ReleaseAfter)
	if b.intakeDone && !b.flushed {
		deadline = now
	}
	if until := b.backoff.until(); until.After(deadline) {
		deadline = until
	}

	wait := deadline.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

// endOfStream returns the error Next reports once everything is drained.
// Must be called with b.mu held.
func (b *Buffer[T]) endOfStream() error {
	if b.intakeErr != nil {
		return &SourceError{Err: b.intakeErr}
	}
	return ErrEndOfStream
}
