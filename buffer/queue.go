package buffer

// queue is the FIFO holding area for unreleased items. It does no locking of
// its own; every call happens with the Buffer lock held.
type queue[T any] struct {
	items []T
}

func (q *queue[T]) len() int {
	return len(q.items)
}

// push appends item at the back.
func (q *queue[T]) push(item T) {
	q.items = append(q.items, item)
}

// prepend puts items at the front, keeping their order, ahead of everything
// already queued.
func (q *queue[T]) prepend(items []T) {
	if len(items) == 0 {
		return
	}

	merged := make([]T, 0, len(items)+len(q.items))
	merged = append(merged, items...)
	merged = append(merged, q.items...)
	q.items = merged
}

// drain removes and returns everything queued.
func (q *queue[T]) drain() []T {
	items := q.items
	q.items = nil
	return items
}
