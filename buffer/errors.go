package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream is returned by Next once intake has ended and every
	// buffered item has been released and resolved.
	ErrEndOfStream = errors.New("buffer: end of stream")

	// ErrAlreadyResolved is returned when Confirm, Return or ReturnOnError is
	// called on a Batch that was already resolved.
	ErrAlreadyResolved = errors.New("buffer: batch already resolved")

	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("buffer: invalid config")

	// ErrNilSource is the source failure reported when Go is called with a nil
	// Source.
	ErrNilSource = errors.New("source cannot be nil")
)

// SourceError is returned by Next when the source failed. It is only returned
// after every item read before the failure has been released, so it also
// matches ErrEndOfStream.
type SourceError struct {
	Err error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("source error: %v", e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEndOfStream.
func (e SourceError) Is(target error) bool {
	return target == ErrEndOfStream
}

// ConfigError is returned by New and Config.Validate for a config that cannot
// be used.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
