package main

import (
	"github.com/spf13/pflag"

	"github.com/MasterOfBinary/relabuf/config"
)

// Options holds the command-line flags of relabuf.
type Options struct {
	ConfigPath  string // YAML config file. Empty runs the built-in demo config.
	LogLevel    string // Overrides log_level from the config file.
	MetricsAddr string // Overrides metrics_addr from the config file.

	// internal
	fs *pflag.FlagSet // FlagSet used in AddFlags() and consulted in Load()
}

// NewOptions returns a new Options struct initialized with default values.
func NewOptions() *Options {
	return &Options{
		LogLevel: "info",
	}
}

// AddFlags binds the Options fields to command-line flags on the given FlagSet.
func (opts *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	opts.fs = fs

	fs.StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath,
		"Path to the YAML config file. If empty, the built-in demo config is used.")
	fs.StringVar(&opts.LogLevel, "log-level", opts.LogLevel,
		"Log level: debug, info, warn or error.")
	fs.StringVar(&opts.MetricsAddr, "metrics-addr", opts.MetricsAddr,
		`Address to serve Prometheus metrics on, e.g. ":9090". Empty disables it.`)
}

// Load reads the config file, or the demo config if none is set, and applies
// the flags that were set explicitly on top of it.
func (opts *Options) Load() (*config.Root, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	if opts.ConfigPath == "" || opts.changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.changed("metrics-addr") {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	return cfg, nil
}

func (opts *Options) changed(name string) bool {
	if opts.fs == nil {
		return false
	}
	f := opts.fs.Lookup(name)
	return f != nil && f.Changed
}
