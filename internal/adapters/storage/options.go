package storage

// Options shared by the store implementations.
type options struct {
	maxPerKey int
}

// Option applies a configuration option to a store.
type Option func(*options)

// WithMaxPerKey bounds the number of saves kept per builder key.
// Values below 1 are ignored.
func WithMaxPerKey(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPerKey = n
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{maxPerKey: defaultMaxPerKey}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
