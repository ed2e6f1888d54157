package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxSize bounds the number of retained results. When the bound is
// reached the oldest result is evicted first. A non-positive size keeps the
// default.
func WithMaxSize(size int) Option {
	return func(s *MemoryStore) {
		if size > 0 {
			s.maxSize = size
		}
	}
}
