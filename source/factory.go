package source

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/MasterOfBinary/relabuf/buffer"
)

// ChannelConfig provides configuration options for creating a Channel source.
type ChannelConfig[T any] struct {
	// Input is the channel from which this source will read data.
	// This field is required.
	Input <-chan T
}

// Validate checks if the ChannelConfig is valid.
func (c ChannelConfig[T]) Validate() error {
	if c.Input == nil {
		return errors.New("input channel cannot be nil")
	}
	return nil
}

// NewChannel creates a new Channel source with the given configuration.
// It validates the configuration and returns an error if invalid.
//
// Example:
//
//	input := make(chan string, 10)
//	src, err := source.NewChannel(source.ChannelConfig[string]{
//		Input: input,
//	})
//	if err != nil {
//		// handle error
//	}
func NewChannel[T any](config ChannelConfig[T]) (*Channel[T], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid channel config: %w", err)
	}

	return &Channel[T]{Input: config.Input}, nil
}

// ErrorConfig provides configuration options for creating an Error source.
type ErrorConfig[T any] struct {
	// Items are returned before Err.
	Items []T

	// Err is the error the source fails with. This field is required; use
	// Slice for a source that ends cleanly.
	Err error
}

// Validate checks if the ErrorConfig is valid.
func (c ErrorConfig[T]) Validate() error {
	if c.Err == nil {
		return errors.New("error cannot be nil")
	}
	return nil
}

// NewError creates a new Error source with the given configuration.
func NewError[T any](config ErrorConfig[T]) (*Error[T], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid error config: %w", err)
	}

	return &Error[T]{Items: config.Items, Err: config.Err}, nil
}

// NewNil creates a new Nil source that blocks for d before ending.
//
// Example:
//
//	src := source.NewNil[string](time.Second)
func NewNil[T any](d time.Duration) *Nil[T] {
	return &Nil[T]{Duration: d}
}

// ThrottleConfig provides configuration options for creating a Throttle
// source.
type ThrottleConfig[T any] struct {
	// Source is the wrapped source. This field is required.
	Source buffer.Source[T]

	// Rate is the maximum number of reads per second. It must be positive.
	Rate float64

	// Burst is the number of reads allowed at once. If zero, 1 is used.
	Burst int
}

// Validate checks if the ThrottleConfig is valid.
func (c ThrottleConfig[T]) Validate() error {
	if c.Source == nil {
		return errors.New("source cannot be nil")
	}
	if c.Rate <= 0 {
		return errors.New("rate must be positive")
	}
	if c.Burst < 0 {
		return errors.New("burst cannot be negative")
	}
	return nil
}

// NewThrottle creates a new Throttle source with the given configuration.
func NewThrottle[T any](config ThrottleConfig[T]) (*Throttle[T], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid throttle config: %w", err)
	}

	burst := config.Burst
	if burst == 0 {
		burst = 1
	}

	return &Throttle[T]{
		Source:  config.Source,
		Limiter: rate.NewLimiter(rate.Limit(config.Rate), burst),
	}, nil
}

// RedisConfig provides configuration options for creating a Redis source.
type RedisConfig struct {
	// Client is used to pop items. This field is required. A *redis.Client
	// satisfies it.
	Client Popper

	// Key is the list to pop from. This field is required.
	Key string

	// PopTimeout bounds a single BLPOP call. If zero, DefaultPopTimeout is
	// used.
	PopTimeout time.Duration
}

// Validate checks if the RedisConfig is valid.
func (c RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.New("client cannot be nil")
	}
	if c.Key == "" {
		return errors.New("key cannot be empty")
	}
	if c.PopTimeout < 0 {
		return errors.New("pop timeout cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis source with the given configuration.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	src, err := source.NewRedis(source.RedisConfig{
//		Client: client,
//		Key:    "jobs",
//	})
//	if err != nil {
//		// handle error
//	}
func NewRedis(config RedisConfig) (*Redis, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	timeout := config.PopTimeout
	if timeout == 0 {
		timeout = DefaultPopTimeout
	}

	return &Redis{
		Client:     config.Client,
		Key:        config.Key,
		PopTimeout: timeout,
	}, nil
}
