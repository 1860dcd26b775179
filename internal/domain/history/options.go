// Package history maintains undo/redo semantics over ranked-list mutations.
package history

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithCapacity bounds the number of snapshots kept. Values below 1 are
// ignored and the default capacity stays in effect.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}
