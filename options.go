package fpff

type readConfig struct {
	limits Limits
}

type ReadOption func(*readConfig)

// WithReadLimits sets custom size limits for Decode and
// DecodeCompressed.
func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

type writeConfig struct {
	limits Limits
}

type WriteOption func(*writeConfig)

// WithWriteLimits sets custom size limits for Encode and
// EncodeCompressed.
func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}
