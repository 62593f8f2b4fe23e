package processor

import "context"

// Error is a Processor that fails every batch with Err, so every batch is
// returned to the buffer.
type Error[T any] struct {
	Err error
}

func (p *Error[T]) Process(_ context.Context, _ []T) error {
	return p.Err
}
