package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPopTimeout is the BLPOP timeout used when none is configured.
const DefaultPopTimeout = 5 * time.Second

var _ Popper = (*redis.Client)(nil)

// Popper is the subset of the go-redis client used by the Redis source.
type Popper interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Redis is a Source that pops string items off the head of a Redis list with
// BLPOP. A pop that times out with no item is retried until ctx is done, so
// an idle list keeps intake waiting rather than ending it.
//
// Redis never returns io.EOF. Intake ends when ctx is done or the client
// fails.
type Redis struct {
	Client     Popper
	Key        string
	PopTimeout time.Duration
}

// Read implements the buffer.Source interface.
func (s *Redis) Read(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		vals, err := s.Client.BLPop(ctx, s.PopTimeout, s.Key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("blpop %s: %w", s.Key, err)
		}

		// BLPOP replies with the key followed by the value.
		if len(vals) != 2 {
			return "", fmt.Errorf("blpop %s: unexpected reply of %d elements", s.Key, len(vals))
		}
		return vals[1], nil
	}
}
