package processor

import "context"

// Channel is a Processor that sends each item to an output channel.
//
// Ownership of the output channel remains with the caller. Because the
// processor is unaware of when the stream has finished, it does not close the
// channel.
type Channel[T any] struct {
	// Output is the channel that receives each item.
	// If nil, the processor does nothing.
	Output chan<- T
}

// Process implements the Processor interface by forwarding items to the
// Output channel until the context is canceled. A batch that is cut short by
// cancellation fails with ctx.Err(), so the buffer gets all of it back even
// though some items were already sent.
func (p *Channel[T]) Process(ctx context.Context, items []T) error {
	if len(items) == 0 || p.Output == nil {
		return nil
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p.Output <- item:
		}
	}

	return nil
}
