package dedupe

type options struct {
	maxSize int
}

// Option applies a configuration option to NewInMemoryDeduper.
type Option func(*options)

// WithMaxSize sets the maximum number of ids kept in memory.
// If maxSize <= 0 the deduper is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(o *options) {
		o.maxSize = maxSize
	}
}
