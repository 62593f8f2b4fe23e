package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/MasterOfBinary/relabuf/buffer"
)

// Releaser hands out released batches. *buffer.Buffer satisfies it.
type Releaser[T any] interface {
	Next(ctx context.Context) (*buffer.Batch[T], error)
}

// Drain runs proc on every batch r releases until the stream ends. A batch is
// confirmed when proc succeeds and returned with the error when it fails, so
// failing batches are retried under the buffer's backoff.
//
// Drain returns nil at a clean end of stream. It returns the *SourceError if
// the source failed, or ctx.Err() if ctx is done first. A batch that proc
// keeps failing is retried until ctx is done.
func Drain[T any](ctx context.Context, r Releaser[T], proc Processor[T]) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, err := r.Next(ctx)
		if err != nil {
			var srcErr *buffer.SourceError
			if errors.As(err, &srcErr) {
				return err
			}
			if errors.Is(err, buffer.ErrEndOfStream) {
				return nil
			}
			return err
		}

		if perr := proc.Process(ctx, b.Items()); perr != nil {
			err = b.ReturnOnError(perr)
		} else {
			err = b.Confirm()
		}
		if err != nil {
			return fmt.Errorf("resolve batch %d: %w", b.Seq(), err)
		}
	}
}
