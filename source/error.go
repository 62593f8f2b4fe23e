package source

import (
	"context"
	"io"
	"sync"
)

// Error is a Source that yields the items in Items and then fails with Err.
// It is useful for testing how a consumer sees a failing source. If Err is
// nil, it ends with io.EOF instead, which makes it a plain slice source.
//
// Error is safe for concurrent use.
type Error[T any] struct {
	// Items are returned, in order, before Err.
	Items []T

	// Err is returned once Items are exhausted, on every further call.
	Err error

	mu   sync.Mutex
	next int
}

// Read implements the buffer.Source interface.
func (s *Error[T]) Read(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next < len(s.Items) {
		item := s.Items[s.next]
		s.next++
		return item, nil
	}

	if s.Err != nil {
		return zero, s.Err
	}
	return zero, io.EOF
}

// Slice returns a Source that yields items in order and then io.EOF.
func Slice[T any](items ...T) *Error[T] {
	return &Error[T]{Items: items}
}
