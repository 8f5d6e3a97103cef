package config

import "context"

type contextKey struct{}

// WithContext returns a context carrying the merged configuration.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext extracts the configuration stored by WithContext. The second
// return value reports whether one was present.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(contextKey{}).(Config)
	return cfg, ok
}
