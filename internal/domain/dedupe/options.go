// Package dedupe provides idempotency tracking for match request ids.
package dedupe

// Option applies a configuration option to the memoryDeduper.
type Option func(*memoryDeduper)

// WithMaxSize sets the maximum number of IDs to keep in memory. When the
// bound is reached the oldest id is evicted first.
func WithMaxSize(maxSize int) Option {
	return func(d *memoryDeduper) {
		if maxSize > 0 {
			d.maxSize = maxSize
		}
	}
}
