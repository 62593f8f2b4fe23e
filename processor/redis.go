package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pusher is the subset of the go-redis client used by RedisPush.
type Pusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

var _ Pusher = (*redis.Client)(nil)

// RedisPush is a Processor that appends every item of a batch to a Redis list
// with a single RPUSH, so a batch is either stored whole or not at all. A
// failed push returns the batch to the buffer.
type RedisPush[T any] struct {
	// Client is used to push items. *redis.Client satisfies it.
	Client Pusher

	// Key is the list to push to.
	Key string

	// Encode turns an item into the stored value. If nil, items are stored
	// with fmt.Sprint.
	Encode func(T) (string, error)
}

// Process implements the Processor interface.
func (p *RedisPush[T]) Process(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if p.Client == nil || p.Key == "" {
		return errors.New("redis push: client and key are required")
	}

	values := make([]interface{}, len(items))
	for i, item := range items {
		if p.Encode == nil {
			values[i] = fmt.Sprint(item)
			continue
		}
		v, err := p.Encode(item)
		if err != nil {
			return fmt.Errorf("redis push: encode item %d: %w", i, err)
		}
		values[i] = v
	}

	if err := p.Client.RPush(ctx, p.Key, values...).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", p.Key, err)
	}
	return nil
}
