package source

import (
	"context"
	"io"
)

// Channel is a Source that reads items from a channel. It returns io.EOF once
// the channel is closed and drained.
//
// The Channel source does not close Input; the sender owns it.
type Channel[T any] struct {
	// Input is the channel from which this source will read items.
	Input <-chan T
}

// Read implements the buffer.Source interface by receiving the next item from
// Input. It returns ctx.Err() if ctx is done first.
//
// A nil Input behaves like a channel that is already closed.
func (s *Channel[T]) Read(ctx context.Context) (T, error) {
	var zero T
	if s.Input == nil {
		return zero, io.EOF
	}

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case item, ok := <-s.Input:
		if !ok {
			return zero, io.EOF
		}
		return item, nil
	}
}
