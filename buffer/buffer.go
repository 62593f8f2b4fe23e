package buffer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// closedDone is a pre-closed channel returned by Done when Go has not been
// called yet. This prevents callers from blocking on a nil channel.
var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Source supplies items to a Buffer, one per call. Read may block for as long
// as it needs and should return when ctx is done.
//
// Any error ends intake for good; the Buffer never retries a Source. Returning
// io.EOF signals a clean end of input. Any other error is reported to the
// consumer as a SourceError once every item read before it has been released.
type Source[T any] interface {
	Read(ctx context.Context) (T, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context) (T, error)

// Read implements the Source interface by calling f.
func (f SourceFunc[T]) Read(ctx context.Context) (T, error) {
	return f(ctx)
}

// Buffer holds items read from a Source until a release condition is met and
// hands them to a single consumer as a Batch.
//
// To create a new Buffer, call New. Start intake with Go, then call Next in a
// loop:
//
//	buf, err := buffer.New[int](buffer.Config{
//		SoftCap:      3,
//		HardCap:      5,
//		ReleaseAfter: 5 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	buf.Go(ctx, src)
//
//	for {
//		b, err := buf.Next(ctx)
//		if err != nil {
//			break
//		}
//		// Handle b.Items(), then resolve the batch.
//		_ = b.Confirm()
//	}
//
// Next must not be called again until the Batch it returned has been resolved.
type Buffer[T any] struct {
	config Config
	logger zerolog.Logger
	stats  StatsCollector
	clock  Clock

	// wake is signalled when the release conditions may have changed. space is
	// signalled when in-flight items are confirmed.
	wake  chan struct{}
	space chan struct{}

	mu          sync.Mutex
	running     bool
	done        chan struct{}
	queue       queue[T]
	inFlight    int
	lastRelease time.Time
	seq         uint64
	backoff     *backoffController
	intakeDone  bool
	intakeErr   error

	// flushed is set by the first release after intake ended.
	flushed bool
}

// New creates a new Buffer using the provided config. It returns a
// *ConfigError if the config is invalid.
func New[T any](config Config) (*Buffer[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Backoff != nil {
		policy := *config.Backoff
		config.Backoff = &policy
	}

	b := &Buffer[T]{
		config: config,
		logger: zerolog.Nop(),
		stats:  &NoOpStatsCollector{},
		clock:  backoff.SystemClock,
		wake:   make(chan struct{}, 1),
		space:  make(chan struct{}, 1),
	}
	b.backoff = newBackoffController(config.Backoff, b.clock)
	b.lastRelease = b.clock.Now()
	return b, nil
}

// WithLogger sets the logger for the Buffer.
// This must be called before Go() is called.
// If not set, no logging occurs.
//
// Panics if called after Go() has started.
func (b *Buffer[T]) WithLogger(logger zerolog.Logger) *Buffer[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		panic("buffer: WithLogger cannot be called after Go() has started")
	}

	b.logger = logger
	return b
}

// WithStats sets a stats collector for the Buffer.
// This must be called before Go() is called.
// If not set, no statistics are collected.
//
// Panics if called after Go() has started.
func (b *Buffer[T]) WithStats(stats StatsCollector) *Buffer[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		panic("buffer: WithStats cannot be called after Go() has started")
	}

	if stats == nil {
		stats = &NoOpStatsCollector{}
	}
	b.stats = stats
	return b
}

// Go starts reading from src in the background. Reading stops when src
// returns an error or ctx is done; items already buffered are still released
// through Next. Cancelling ctx is treated as a clean end of input.
//
// Go must only be called once. Calling it again panics.
func (b *Buffer[T]) Go(ctx context.Context, src Source[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		panic("buffer: Go cannot be called more than once")
	}

	b.running = true
	b.done = make(chan struct{})
	b.lastRelease = b.clock.Now()

	if src == nil {
		b.logger.Error().Msg("invalid source: nil")
		b.intakeDone = true
		b.intakeErr = ErrNilSource
		close(b.done)
		b.signal(b.wake)
		return
	}

	b.logger.Info().
		Uint("soft_cap", b.config.SoftCap).
		Uint("hard_cap", b.config.HardCap).
		Dur("release_after", b.config.ReleaseAfter).
		Bool("backoff", b.config.Backoff != nil).
		Msg("starting intake")

	go b.intake(ctx, src)
}

// Done returns a channel that is closed when intake has ended, either because
// the source returned an error or the context passed to Go was canceled.
// Buffered items may still be waiting to be released.
func (b *Buffer[T]) Done() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done == nil {
		return closedDone
	}
	return b.done
}

// Next waits for the next Batch. It returns ErrEndOfStream, or a *SourceError
// if the source failed, once intake has ended and every item has been
// released and resolved.
//
// If ctx is done first, Next returns ctx.Err() and the buffer is left exactly
// as it was, so the call can be retried.
//
// Next must not be called again until the previous Batch has been resolved.
func (b *Buffer[T]) Next(ctx context.Context) (*Batch[T], error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b.mu.Lock()
		now := b.clock.Now()

		if reason, ok := b.releaseReason(now); ok {
			batch := b.release(now, reason)
			b.mu.Unlock()

			b.stats.RecordRelease(batch.reason, batch.Len(), batch.elapsed)
			b.stats.RecordQueueLength(0)
			b.logger.Debug().
				Uint64("batch", batch.seq).
				Int("items", batch.Len()).
				Str("reason", batch.reason.String()).
				Dur("elapsed", batch.elapsed).
				Msg("released batch")
			return batch, nil
		}

		if b.intakeDone && b.queue.len() == 0 && b.inFlight == 0 {
			err := b.endOfStream()
			b.mu.Unlock()
			return nil, err
		}

		wait, hasDeadline := b.nextDeadline(now)
		b.mu.Unlock()

		var timer *time.Timer
		var fire <-chan time.Time
		if hasDeadline {
			timer = time.NewTimer(wait)
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil, ctx.Err()
		case <-b.wake:
		case <-fire:
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// Len returns the number of buffered items, not counting items of unresolved
// batches.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue.len()
}

// InFlight returns the number of items in released batches that haven't been
// resolved yet.
func (b *Buffer[T]) InFlight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight
}

// BackoffState returns a snapshot of the backoff state.
func (b *Buffer[T]) BackoffState() BackoffState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.backoff.snapshot()
}

// resolve implements resolver. It moves batch to its terminal state.
func (b *Buffer[T]) resolve(batch *Batch[T], to Resolution, cause error) error {
	b.mu.Lock()

	if batch.state != Unresolved {
		state := batch.state
		b.mu.Unlock()
		return fmt.Errorf("%w: batch %d is %s", ErrAlreadyResolved, batch.seq, state)
	}

	batch.state = to
	b.inFlight -= len(batch.items)

	var suppression time.Duration
	switch to {
	case Confirmed:
		b.backoff.onConfirm()
	case Returned:
		b.queue.prepend(batch.items)
		suppression = b.backoff.onReturn()
	}
	state := b.backoff.snapshot()
	queued := b.queue.len()
	b.mu.Unlock()

	switch to {
	case Confirmed:
		b.stats.RecordConfirm(len(batch.items))
		b.logger.Info().
			Uint64("batch", batch.seq).
			Int("items", len(batch.items)).
			Msg("batch confirmed")
		b.signal(b.space)
	case Returned:
		b.stats.RecordReturn(len(batch.items), suppression)
		b.stats.RecordQueueLength(queued)

		event := b.logger.Info()
		if cause != nil {
			event = b.logger.Warn().Err(cause)
		}
		event.
			Uint64("batch", batch.seq).
			Int("items", len(batch.items)).
			Int("attempt", state.Attempts).
			Dur("suppression", suppression).
			Msg("batch returned")

		if state.Exhausted && suppression == 0 {
			b.logger.Warn().
				Int("attempt", state.Attempts).
				Msg("backoff exhausted, time trigger no longer suppressed")
		}
	}

	b.signal(b.wake)
	return nil
}

// resolution implements resolver.
func (b *Buffer[T]) resolution(batch *Batch[T]) Resolution {
	b.mu.Lock()
	defer b.mu.Unlock()
	return batch.state
}

// signal does a non-blocking send on a one-slot channel.
func (b *Buffer[T]) signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
