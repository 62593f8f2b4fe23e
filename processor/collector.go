package processor

import (
	"context"
	"sync"
)

// Collector is a Processor that keeps every item it is given. It can be used
// to inspect what a consumer saw once the stream has ended.
//
// All methods are safe for concurrent use. Collector copies the item values
// but does not deep copy what they point to.
//
// Example usage:
//
//	collector := &processor.Collector[string]{}
//	err := processor.Drain(ctx, buf, collector)
//
//	for _, item := range collector.Results(false) {
//		fmt.Println(item)
//	}
type Collector[T any] struct {
	// MaxItems limits the number of items collected (0 for unlimited).
	// Once the number of collected items reaches MaxItems, no more items
	// are collected, but batches still succeed.
	MaxItems int

	mu      sync.RWMutex
	results []T
}

// Process implements the Processor interface by appending items to the
// collection. It never fails.
func (c *Collector[T]) Process(_ context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		if c.MaxItems > 0 && len(c.results) >= c.MaxItems {
			break
		}
		c.results = append(c.results, item)
	}

	return nil
}

// Results returns a copy of the collected items. If reset is true the
// collection is cleared in the same step.
func (c *Collector[T]) Results(reset bool) []T {
	if reset {
		c.mu.Lock()
		defer c.mu.Unlock()
	} else {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}

	result := make([]T, len(c.results))
	copy(result, c.results)

	if reset {
		c.results = nil
	}

	return result
}

// Reset clears all collected results.
func (c *Collector[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = nil
}

// Count returns the number of items collected so far.
func (c *Collector[T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.results)
}
