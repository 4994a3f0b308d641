package halloc

import "log/slog"

const (
	// DefaultCapacity is the arena size used when NewHeap is given a
	// capacity <= 0 (4 KiB).
	DefaultCapacity = 4096

	// Alignment of every payload offset and payload size.
	Alignment = 8

	// MinSplitPayload is the smallest payload a split-off remainder may
	// carry. Smaller remainders stay with the block being allocated.
	MinSplitPayload = 8

	// HeaderSize is the size of the in-band block header.
	HeaderSize = 24
)

type config struct {
	mmap   bool
	logger *slog.Logger
}

// Option configures a Heap at construction time.
type Option func(*config)

// WithMmap backs the arena with an anonymous memory mapping instead of a
// Go-allocated slice, keeping it outside the garbage collector's view.
// Platforms without mmap fall back to a regular slice.
func WithMmap(enable bool) Option {
	return func(c *config) {
		c.mmap = enable
	}
}

// WithLogger sets the structured logger used by the heap.
// A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = noopLogger()
	}
	return c
}

// align8 rounds n up to a multiple of Alignment. ok is false when the
// rounded value would overflow int.
func align8(n int) (size int, ok bool) {
	size = (n + Alignment - 1) &^ (Alignment - 1)
	return size, size >= n
}
