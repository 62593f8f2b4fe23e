package source

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/MasterOfBinary/relabuf/buffer"
)

// Throttle wraps a Source and limits how often it is read. Each Read waits
// on Limiter before reading from Source, so a fast producer cannot fill the
// buffer faster than the configured rate.
//
// The zero Limiter is not usable; create a Throttle with NewThrottle or set
// Limiter explicitly.
type Throttle[T any] struct {
	Source  buffer.Source[T]
	Limiter *rate.Limiter
}

// Read implements the buffer.Source interface. If ctx is done while waiting
// for a token, Read returns ctx.Err() without reading from Source.
func (s *Throttle[T]) Read(ctx context.Context) (T, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		var zero T
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		return zero, err
	}
	return s.Source.Read(ctx)
}
