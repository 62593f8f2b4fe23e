package buffer

import (
	"context"
	"errors"
	"io"
)

// intake reads from src one item at a time and queues each one. It pauses
// while the buffer is full, and stops for good on the first error from src.
//
// It runs as a background goroutine started by Go and closes b.done when it
// returns.
func (b *Buffer[T]) intake(ctx context.Context, src Source[T]) {
	defer close(b.done)

	var read uint64
	for {
		if err := b.awaitCapacity(ctx); err != nil {
			b.finishIntake(ctx, err, read)
			return
		}

		item, err := src.Read(ctx)
		if err != nil {
			b.finishIntake(ctx, err, read)
			return
		}

		b.mu.Lock()
		b.queue.push(item)
		n := b.queue.len()
		b.mu.Unlock()

		read++
		b.stats.RecordItemRead()
		b.stats.RecordQueueLength(n)
		b.signal(b.wake)
	}
}

// awaitCapacity blocks until there is room for one more item. Items of
// unresolved batches take up room too, so a returned batch always fits back
// in. It returns ctx.Err() if ctx is done first.
func (b *Buffer[T]) awaitCapacity(ctx context.Context) error {
	blocked := false
	for {
		b.mu.Lock()
		held := b.queue.len() + b.inFlight
		b.mu.Unlock()

		if uint(held) < b.config.HardCap {
			if blocked {
				b.logger.Debug().Int("held", held).Msg("intake resumed")
			}
			return nil
		}

		if !blocked {
			blocked = true
			b.stats.RecordIntakeBlocked()
			b.logger.Debug().Int("held", held).Msg("buffer full, intake paused")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.space:
		}
	}
}

// finishIntake records why intake ended and wakes the consumer so it can
// flush what's left.
func (b *Buffer[T]) finishIntake(ctx context.Context, err error, read uint64) {
	clean := errors.Is(err, io.EOF) || (ctx.Err() != nil && errors.Is(err, ctx.Err()))

	b.mu.Lock()
	b.intakeDone = true
	if !clean {
		b.intakeErr = err
	}
	remaining := b.queue.len()
	b.mu.Unlock()

	if clean {
		b.logger.Info().
			Uint64("items_read", read).
			Int("remaining", remaining).
			Msg("intake complete")
	} else {
		b.stats.RecordSourceError()
		b.logger.Error().
			Err(err).
			Uint64("items_read", read).
			Int("remaining", remaining).
			Msg("source failed, intake stopped")
	}

	b.signal(b.wake)
}
