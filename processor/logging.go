package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// LoggingProcessor wraps another processor and adds logging capabilities.
// It logs when processing starts and completes, along with any error
// encountered.
type LoggingProcessor[T any] struct {
	// Processor is the wrapped processor that does the actual work.
	// If nil, every batch succeeds.
	Processor Processor[T]

	// Logger is used to log processing events. The zero Logger discards
	// everything.
	Logger zerolog.Logger

	// Name is an optional name for this processor used in log messages.
	// If empty, the wrapped processor's type is used.
	Name string
}

// Process implements the Processor interface by delegating to the wrapped
// processor and logging the operation.
func (p *LoggingProcessor[T]) Process(ctx context.Context, items []T) error {
	if p.Processor == nil {
		return nil
	}

	name := p.Name
	if name == "" {
		name = fmt.Sprintf("%T", p.Processor)
	}

	start := time.Now()
	p.Logger.Debug().
		Str("processor", name).
		Int("items", len(items)).
		Msg("processing batch")

	err := p.Processor.Process(ctx, items)

	duration := time.Since(start)
	if err != nil {
		p.Logger.Error().
			Err(err).
			Str("processor", name).
			Int("items", len(items)).
			Dur("duration", duration).
			Msg("processing failed")
		return err
	}

	p.Logger.Debug().
		Str("processor", name).
		Int("items", len(items)).
		Dur("duration", duration).
		Msg("processing completed")
	return nil
}

// WrapWithLogging wraps a processor with logging capabilities.
// This is a convenience function for creating a LoggingProcessor.
//
// Example:
//
//	logger := obs.SetupLogger(os.Stderr, "debug")
//	wrapped := processor.WrapWithLogging(myProcessor, logger, "MyProcessor")
func WrapWithLogging[T any](proc Processor[T], logger zerolog.Logger, name string) *LoggingProcessor[T] {
	return &LoggingProcessor[T]{
		Processor: proc,
		Logger:    logger,
		Name:      name,
	}
}
