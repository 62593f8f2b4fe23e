package sync

import (
	"context"
	"errors"
)

// ErrClosed is returned by Set once the Writer has been closed.
var ErrClosed = errors.New("sync: writer closed")

// WriteFunc is a user-provided function that performs a batched write
// operation. It receives a map of key-value pairs to write. If it returns an
// error the whole batch is kept and written again later, so it must be safe
// to call again with the same data.
type WriteFunc[K comparable, V any] func(ctx context.Context, data map[K]V) error

// writeRequest represents a single write operation in the batch.
type writeRequest[K comparable, V any] struct {
	ctx      context.Context
	key      K
	value    V
	response chan error
}

// reply sends err to the waiting caller. A request is answered at most once;
// later replies are dropped.
func (r *writeRequest[K, V]) reply(err error) {
	select {
	case r.response <- err:
	default:
	}
}
