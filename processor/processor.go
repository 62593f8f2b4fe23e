package processor

import "context"

// Processor handles the items of one released batch. A nil error confirms the
// batch; any other error returns it to the buffer.
type Processor[T any] interface {
	Process(ctx context.Context, items []T) error
}

// Func adapts a function to the Processor interface.
type Func[T any] func(ctx context.Context, items []T) error

// Process implements the Processor interface by calling f.
func (f Func[T]) Process(ctx context.Context, items []T) error {
	return f(ctx, items)
}
