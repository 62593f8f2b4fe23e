package source

import (
	"context"
	"io"
	"time"
)

// Nil is a Source that doesn't read any data. It blocks for Duration and then
// returns io.EOF, or returns ctx.Err() if ctx is done first. A zero Duration
// blocks until ctx is done. It can be used as a mock Source to exercise the
// timing of a consumer without items.
type Nil[T any] struct {
	Duration time.Duration
}

// Read implements the buffer.Source interface.
func (s *Nil[T]) Read(ctx context.Context) (T, error) {
	var zero T

	if s.Duration <= 0 {
		<-ctx.Done()
		return zero, ctx.Err()
	}

	timer := time.NewTimer(s.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-timer.C:
		return zero, io.EOF
	}
}
