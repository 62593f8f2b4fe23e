package buffer

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Clock tells the current time. It is satisfied by backoff.SystemClock.
type Clock interface {
	Now() time.Time
}

// BackoffState is a snapshot of the backoff state.
type BackoffState struct {
	// SuppressedUntil is when the ReleaseAfter trigger becomes active again.
	// It is zero if nothing is suppressed.
	SuppressedUntil time.Time

	// Attempts is the number of returns since the last confirm.
	Attempts int

	// Suppressed is the total suppression applied since the last confirm.
	Suppressed time.Duration

	// Exhausted is true once MaxElapsedTime was exceeded and returns stopped
	// extending suppression.
	Exhausted bool
}

// backoffController decides how long the ReleaseAfter trigger is suppressed
// after a returned batch. It is not safe for concurrent use; Buffer calls it
// with its lock held.
type backoffController struct {
	clock      Clock
	exp        *backoff.ExponentialBackOff
	maxElapsed time.Duration
	state      BackoffState
}

// newBackoffController returns a controller for cfg. A nil cfg yields a
// controller that never suppresses.
func newBackoffController(cfg *BackoffConfig, clock Clock) *backoffController {
	c := &backoffController{clock: clock}
	if cfg == nil {
		return c
	}
	c.maxElapsed = cfg.MaxElapsedTime

	c.exp = &backoff.ExponentialBackOff{
		InitialInterval:     cfg.InitialInterval,
		RandomizationFactor: cfg.RandomizationFactor,
		Multiplier:          cfg.Multiplier,
		MaxInterval:         cfg.MaxInterval,
		// The bound is checked against the suppression already applied, in
		// onReturn. ExponentialBackOff would stop before it is reached.
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               clock,
	}
	c.exp.Reset()
	return c
}

// onReturn records a returned batch and returns the suppression it applied.
// It returns zero if backoff is disabled or exhausted.
func (c *backoffController) onReturn() time.Duration {
	if c.exp == nil {
		return 0
	}

	// The elapsed time bound counts from the first return of a streak.
	if c.state.Attempts == 0 {
		c.exp.Reset()
	}
	c.state.Attempts++

	if c.state.Exhausted {
		return 0
	}
	if c.maxElapsed > 0 && c.state.Suppressed > c.maxElapsed {
		c.state.Exhausted = true
		return 0
	}

	interval := c.exp.NextBackOff()

	c.state.SuppressedUntil = c.clock.Now().Add(interval)
	c.state.Suppressed += interval
	return interval
}

// onConfirm clears all suppression.
func (c *backoffController) onConfirm() {
	c.state = BackoffState{}
}

// suppressing reports whether the ReleaseAfter trigger is disabled at now.
func (c *backoffController) suppressing(now time.Time) bool {
	return now.Before(c.state.SuppressedUntil)
}

// until returns the end of the current suppression, or the zero time.
func (c *backoffController) until() time.Time {
	return c.state.SuppressedUntil
}

func (c *backoffController) snapshot() BackoffState {
	return c.state
}
