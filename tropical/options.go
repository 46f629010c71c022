package tropical

import "github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"

// DefaultStripeWidth is the default k-stripe width of the zorder kernel.
const DefaultStripeWidth = registry.DefaultStripeWidth

// Config holds the per-call kernel settings.
type Config struct {
	// Workers bounds the goroutines a kernel may use. 0 means GOMAXPROCS.
	Workers int

	// StripeWidth is the reduction stripe width of the zorder kernel.
	StripeWidth int

	// ScratchLimit caps the scratch bytes one call may allocate.
	// 0 means no practical limit.
	ScratchLimit int64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		StripeWidth: DefaultStripeWidth,
	}
}

// WithWorkers bounds the number of goroutines. Non-positive values keep
// the GOMAXPROCS default.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithStripeWidth sets the zorder stripe width. Non-positive values are
// ignored.
func WithStripeWidth(width int) Option {
	return func(cfg *Config) {
		if width > 0 {
			cfg.StripeWidth = width
		}
	}
}

// WithScratchLimit caps the scratch memory of one call in bytes.
// Non-positive values are ignored.
func WithScratchLimit(bytes int64) Option {
	return func(cfg *Config) {
		if bytes > 0 {
			cfg.ScratchLimit = bytes
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c Config) kernelConfig() registry.Config {
	return registry.Config{
		Workers:      c.Workers,
		StripeWidth:  c.StripeWidth,
		ScratchLimit: c.ScratchLimit,
	}.Normalize()
}
