package buffer

import "time"

// resolver is implemented by Buffer. A Batch calls it to hand its items back.
type resolver[T any] interface {
	resolve(b *Batch[T], to Resolution, cause error) error
	resolution(b *Batch[T]) Resolution
}

// Batch is a set of items released by a Buffer. It must be resolved exactly
// once, by calling Confirm, Return or ReturnOnError. Until then its items are
// owned by the Batch and count towards the Buffer's HardCap.
type Batch[T any] struct {
	items      []T
	reason     ReleaseReason
	elapsed    time.Duration
	seq        uint64
	releasedAt time.Time
	owner      resolver[T]

	// state is guarded by the lock of the owning Buffer.
	state Resolution
}

// Items returns a copy of the batch's items, in release order.
func (b *Batch[T]) Items() []T {
	items := make([]T, len(b.items))
	copy(items, b.items)
	return items
}

// Len returns the number of items in the batch.
func (b *Batch[T]) Len() int {
	return len(b.items)
}

// Reason returns why the batch was released.
func (b *Batch[T]) Reason() ReleaseReason {
	return b.reason
}

// Elapsed returns the time between the previous release and this one.
func (b *Batch[T]) Elapsed() time.Duration {
	return b.elapsed
}

// Seq returns the batch's sequence number. The first batch released by a
// Buffer is 1.
func (b *Batch[T]) Seq() uint64 {
	return b.seq
}

// ReleasedAt returns when the batch was released.
func (b *Batch[T]) ReleasedAt() time.Time {
	return b.releasedAt
}

// State returns the batch's current resolution.
func (b *Batch[T]) State() Resolution {
	return b.owner.resolution(b)
}

// Confirm discards the items for good and resets the backoff. It returns an
// error wrapping ErrAlreadyResolved if the batch was already resolved.
func (b *Batch[T]) Confirm() error {
	return b.owner.resolve(b, Confirmed, nil)
}

// Return puts the items back at the front of the buffer, in their original
// order, and arms the backoff. It returns an error wrapping
// ErrAlreadyResolved if the batch was already resolved.
func (b *Batch[T]) Return() error {
	return b.owner.resolve(b, Returned, nil)
}

// ReturnOnError is Return for a consumer that failed with err. The cause is
// logged; otherwise it behaves exactly like Return.
func (b *Batch[T]) ReturnOnError(err error) error {
	return b.owner.resolve(b, Returned, err)
}
