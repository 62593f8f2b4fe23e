package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MasterOfBinary/relabuf/buffer"
)

// Source kinds.
const (
	KindDemo  = "demo"
	KindRedis = "redis"
)

type Redis struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	Key        string        `yaml:"key"`
	PopTimeout time.Duration `yaml:"pop_timeout"`

	// OutputKey, if set, receives every batch with RPUSH. A batch is
	// confirmed once it has been pushed.
	OutputKey string `yaml:"output_key"`
}

type Source struct {
	Kind string `yaml:"kind"` // "demo" or "redis"

	// RatePerSecond throttles reads from the source. Zero disables it.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`

	Redis Redis `yaml:"redis"`
}

type Root struct {
	LogLevel    string        `yaml:"log_level"`    // "debug","info","warn","error"
	MetricsAddr string        `yaml:"metrics_addr"` // e.g. ":9090", empty disables /metrics
	Buffer      buffer.Config `yaml:"buffer"`
	Source      Source        `yaml:"source"`
}

// Default returns the config used when no file is given. It mirrors the
// demo: release every 3 items or 5 seconds, hold at most 5, and back off on
// returns without an elapsed-time bound.
func Default() *Root {
	cfg := defaultRoot()
	cfg.applyDefaults()
	backoff := buffer.DefaultBackoffConfig()
	backoff.MaxElapsedTime = 0
	cfg.Buffer.Backoff = &backoff
	return cfg
}

// Load reads the YAML file at path, fills in defaults and validates the
// result. Buffer settings missing from the file keep their defaults; a value
// given explicitly, zero included, is kept as is.
func Load(path string) (*Root, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := defaultRoot()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultRoot holds the defaults that are decoded over, so a zero in the file
// can be told apart from a missing key.
func defaultRoot() *Root {
	return &Root{
		Buffer: buffer.Config{
			SoftCap:      3,
			HardCap:      5,
			ReleaseAfter: 5 * time.Second,
		},
	}
}

func (c *Root) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if b := c.Buffer.Backoff; b != nil {
		if b.InitialInterval == 0 {
			b.InitialInterval = buffer.DefaultInitialInterval
		}
		if b.Multiplier == 0 {
			b.Multiplier = buffer.DefaultMultiplier
		}
		if b.MaxInterval == 0 {
			b.MaxInterval = buffer.DefaultMaxInterval
		}
	}

	if c.Source.Kind == "" {
		c.Source.Kind = KindDemo
	}
	if c.Source.RatePerSecond > 0 && c.Source.Burst == 0 {
		c.Source.Burst = 1
	}
	if c.Source.Redis.Addr == "" {
		c.Source.Redis.Addr = "localhost:6379"
	}
	if c.Source.Redis.Key == "" {
		c.Source.Redis.Key = "relabuf"
	}
	if c.Source.Redis.PopTimeout == 0 {
		c.Source.Redis.PopTimeout = 5 * time.Second
	}
}

// Validate checks the buffer settings and the source section.
func (c *Root) Validate() error {
	if err := c.Buffer.Validate(); err != nil {
		return err
	}

	switch c.Source.Kind {
	case KindDemo, KindRedis:
	default:
		return fmt.Errorf("source.kind %q: must be %q or %q", c.Source.Kind, KindDemo, KindRedis)
	}
	if c.Source.RatePerSecond < 0 {
		return errors.New("source.rate_per_second cannot be negative")
	}
	if c.Source.Burst < 0 {
		return errors.New("source.burst cannot be negative")
	}
	if c.Source.Redis.PopTimeout < 0 {
		return errors.New("source.redis.pop_timeout cannot be negative")
	}
	return nil
}
