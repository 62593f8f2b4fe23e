package sync

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MasterOfBinary/relabuf/buffer"
	"github.com/MasterOfBinary/relabuf/processor"
)

// Writer provides synchronous write operations that are batched behind the
// scenes. Unlike a plain batcher, a failed write is not reported to the
// callers: the batch goes back into the buffer and is written again under
// the buffer's backoff, and Set keeps waiting until its value is written or
// its context is done.
type Writer[K comparable, V any] struct {
	input   chan *writeRequest[K, V]
	closing chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc
	buf     *buffer.Buffer[*writeRequest[K, V]]

	closeOnce sync.Once
	err       error
}

// NewWriter creates a new Writer with the specified buffer configuration and
// write function. The writeFunc will be called with batches of key-value
// pairs to write. Log output goes to logger.
func NewWriter[K comparable, V any](config buffer.Config, writeFunc WriteFunc[K, V], logger zerolog.Logger) (*Writer[K, V], error) {
	buf, err := buffer.New[*writeRequest[K, V]](config)
	if err != nil {
		return nil, err
	}
	buf.WithLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer[K, V]{
		input:   make(chan *writeRequest[K, V]),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
		cancel:  cancel,
		buf:     buf,
	}

	buf.Go(ctx, buffer.SourceFunc[*writeRequest[K, V]](w.read))

	go func() {
		defer close(w.done)
		w.err = processor.Drain[*writeRequest[K, V]](ctx, buf, &writeProcessor[K, V]{writeFunc: writeFunc})
	}()

	return w, nil
}

// Set writes a key-value pair. It blocks until a batch containing it has been
// written, the context is done, or the Writer is closed. Multiple concurrent
// Set calls are batched together according to the buffer configuration.
func (w *Writer[K, V]) Set(ctx context.Context, key K, value V) error {
	req := &writeRequest[K, V]{
		ctx:      ctx,
		key:      key,
		value:    value,
		response: make(chan error, 1),
	}

	select {
	case w.input <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-w.closing:
		return ErrClosed
	}

	select {
	case err := <-req.response:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-w.done:
		// The final batch may have been written just before Drain returned.
		select {
		case err := <-req.response:
			return err
		default:
			return ErrClosed
		}
	}
}

// Close stops accepting writes and waits until every accepted write has been
// written. If ctx is done first, pending writes are abandoned and Close
// returns ctx.Err().
func (w *Writer[K, V]) Close(ctx context.Context) error {
	w.closeOnce.Do(func() { close(w.closing) })

	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
		w.cancel()
		<-w.done
		return ctx.Err()
	}
}

// Stats returns the number of writes buffered and in flight.
func (w *Writer[K, V]) Stats() (queued, inFlight int) {
	return w.buf.Len(), w.buf.InFlight()
}

// read is the buffer source: it hands over requests until the Writer closes.
func (w *Writer[K, V]) read(ctx context.Context) (*writeRequest[K, V], error) {
	select {
	case req := <-w.input:
		return req, nil
	case <-w.closing:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// writeProcessor implements processor.Processor for write requests.
type writeProcessor[K comparable, V any] struct {
	writeFunc WriteFunc[K, V]
}

func (p *writeProcessor[K, V]) Process(ctx context.Context, reqs []*writeRequest[K, V]) error {
	active := make([]*writeRequest[K, V], 0, len(reqs))
	data := make(map[K]V)

	for _, req := range reqs {
		if err := req.ctx.Err(); err != nil {
			req.reply(err)
			continue
		}
		active = append(active, req)
		// Last write wins for duplicate keys.
		data[req.key] = req.value
	}

	if len(data) == 0 {
		return nil
	}

	if err := p.writeFunc(ctx, data); err != nil {
		return err
	}

	for _, req := range active {
		req.reply(nil)
	}
	return nil
}
