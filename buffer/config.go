package buffer

import "time"

// Default backoff values, matching the usual exponential backoff defaults.
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMultiplier      = 1.5
	DefaultMaxInterval     = 60 * time.Second
	DefaultMaxElapsedTime  = 15 * time.Minute
)

// Config contains the Buffer config values. They cannot be changed once the
// Buffer is created.
type Config struct {
	// SoftCap is the number of buffered items that forces a release,
	// regardless of ReleaseAfter or backoff. Zero disables the count trigger.
	SoftCap uint `yaml:"soft_cap" json:"softCap"`

	// HardCap is the maximum number of items held at once, including the items
	// of a released batch that hasn't been resolved yet. Intake pauses while
	// the buffer is full, so a consumer holding a large unresolved batch
	// stalls reading until it confirms or returns it. It must be positive and
	// at least SoftCap.
	HardCap uint `yaml:"hard_cap" json:"hardCap"`

	// ReleaseAfter is how long buffered items wait after the previous release
	// before they are released anyway. The timer restarts on every release.
	ReleaseAfter time.Duration `yaml:"release_after" json:"releaseAfter"`

	// Backoff configures how returned batches suppress the ReleaseAfter
	// trigger. If nil, returns have no effect on release timing.
	Backoff *BackoffConfig `yaml:"backoff,omitempty" json:"backoff,omitempty"`
}

// BackoffConfig configures the exponential backoff applied after a batch is
// returned.
type BackoffConfig struct {
	// InitialInterval is the suppression applied after the first return.
	InitialInterval time.Duration `yaml:"initial_interval" json:"initialInterval"`

	// Multiplier grows the interval after each further return.
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`

	// MaxInterval caps a single suppression interval.
	MaxInterval time.Duration `yaml:"max_interval" json:"maxInterval"`

	// MaxElapsedTime bounds the total suppression applied since the first
	// return that hasn't been followed by a confirm. Once that total exceeds
	// it, returns stop extending suppression. Zero means no bound.
	MaxElapsedTime time.Duration `yaml:"max_elapsed_time" json:"maxElapsedTime"`

	// RandomizationFactor spreads each interval over
	// [interval*(1-f), interval*(1+f)]. Zero keeps intervals exact.
	RandomizationFactor float64 `yaml:"randomization_factor" json:"randomizationFactor"`
}

// DefaultBackoffConfig returns a BackoffConfig with the default values.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		InitialInterval: DefaultInitialInterval,
		Multiplier:      DefaultMultiplier,
		MaxInterval:     DefaultMaxInterval,
		MaxElapsedTime:  DefaultMaxElapsedTime,
	}
}

// Validate checks the config values and returns a *ConfigError for the first
// invalid one.
func (c Config) Validate() error {
	if c.HardCap == 0 {
		return &ConfigError{Field: "hard_cap", Reason: "must be greater than 0"}
	}
	if c.HardCap < c.SoftCap {
		return &ConfigError{Field: "hard_cap", Reason: "must not be less than soft_cap"}
	}
	if c.ReleaseAfter < 0 {
		return &ConfigError{Field: "release_after", Reason: "cannot be negative"}
	}
	if c.Backoff != nil {
		return c.Backoff.Validate()
	}
	return nil
}

// Validate checks the backoff values.
func (c BackoffConfig) Validate() error {
	if c.InitialInterval <= 0 {
		return &ConfigError{Field: "backoff.initial_interval", Reason: "must be greater than 0"}
	}
	if c.Multiplier < 1 {
		return &ConfigError{Field: "backoff.multiplier", Reason: "must be at least 1"}
	}
	if c.MaxInterval < c.InitialInterval {
		return &ConfigError{Field: "backoff.max_interval", Reason: "must not be less than initial_interval"}
	}
	if c.MaxElapsedTime < 0 {
		return &ConfigError{Field: "backoff.max_elapsed_time", Reason: "cannot be negative"}
	}
	if c.RandomizationFactor < 0 || c.RandomizationFactor >= 1 {
		return &ConfigError{Field: "backoff.randomization_factor", Reason: "must be in [0, 1)"}
	}
	return nil
}
