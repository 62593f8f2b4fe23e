package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/MasterOfBinary/relabuf/buffer"
	"github.com/MasterOfBinary/relabuf/processor"
)

const (
	demoItems    = 16
	demoStep     = 150 * time.Millisecond
	demoFailures = 7
)

var errDemo = errors.New("demo consumer failure")

// produce sends demoItems items to out, waiting a little longer before each
// one, and closes out when done.
func produce(ctx context.Context, out chan<- uint32, logger zerolog.Logger) {
	defer close(out)

	for i := 0; i < demoItems; i++ {
		d := time.Duration(i) * demoStep
		logger.Info().Int("item", i).Dur("wait", d).Msg("waiting before emitting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(d):
		}

		start := time.Now()
		select {
		case <-ctx.Done():
			return
		case out <- uint32(i):
		}
		logger.Info().Int("item", i).Dur("took", time.Since(start)).Msg("emitted")
	}

	logger.Info().Msg("producer is finished")
}

// failFirst returns a Processor that fails the first n batches and succeeds
// afterwards. Drain calls it from a single goroutine.
func failFirst[T any](n int, logger zerolog.Logger) processor.Processor[T] {
	calls := 0
	return processor.Func[T](func(_ context.Context, items []T) error {
		calls++
		if calls <= n {
			logger.Info().Int("call", calls).Interface("items", items).Msg("consumed, returning due to error")
			return errDemo
		}
		logger.Info().Int("call", calls).Interface("items", items).Msg("consumed")
		return nil
	})
}

// logItems returns a Processor that logs every batch and succeeds.
func logItems[T any](logger zerolog.Logger) processor.Processor[T] {
	return processor.Func[T](func(_ context.Context, items []T) error {
		logger.Info().Int("items", len(items)).Interface("batch", items).Msg("consumed")
		return nil
	})
}

// logStats writes a summary of what the buffer did.
func logStats(logger zerolog.Logger, s buffer.Stats) {
	logger.Info().
		Uint64("items_read", s.ItemsRead).
		Uint64("batches_released", s.BatchesReleased).
		Uint64("batches_confirmed", s.BatchesConfirmed).
		Uint64("batches_returned", s.BatchesReturned).
		Float64("avg_batch_size", s.AverageBatchSize()).
		Float64("return_rate", s.ReturnRate()).
		Dur("total_suppression", s.TotalSuppression).
		Dur("duration", s.Duration()).
		Msg("done")
}
