package blocktree

import (
	"go.uber.org/zap"
)

// Option is a functional option for tokenizers and tree builds.
type Option func(*config)

// config holds the settings shared by NewCharTokenizer and Build.
type config struct {
	logger   *zap.Logger
	maxDepth int
}

// defaultConfig returns the default settings.
func defaultConfig() *config {
	return &config{
		logger:   nil,
		maxDepth: DefaultMaxDepth,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// WithLogger sets the logger.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxDepth limits how deeply Build may nest blocks.
// Use 0 for unlimited depth. Ignored by tokenizers.
// Default: 0
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}
