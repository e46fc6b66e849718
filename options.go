package stepbuilder

import "log/slog"

type config struct {
	logger *slog.Logger
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Builder.
type Option func(*config)

// WithLogger gives the builder an isolated logger. Build injects it into the
// context it passes to every operation and hook, where it can be retrieved
// with ctxlog.FromContext. Without this option Build uses the logger already
// carried by the incoming context, falling back to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
