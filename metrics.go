package halloc

// SizeInUse returns the payload bytes held by allocated blocks.
func (h *Heap) SizeInUse() int {
	sum := 0
	h.Walk(func(b Block) bool {
		if !b.Free {
			sum += b.Size
		}
		return true
	})
	return sum
}

// NumBlocks returns the number of blocks in the chain, free or not.
func (h *Heap) NumBlocks() int {
	n := 0
	h.Walk(func(Block) bool {
		n++
		return true
	})
	return n
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
func (h *Heap) Utilization() float64 {
	if h.capacity == 0 {
		return 0
	}
	return float64(h.SizeInUse()) / float64(h.capacity)
}

// Metrics returns a snapshot of heap statistics.
func (h *Heap) Metrics() HeapMetrics {
	m := HeapMetrics{
		Capacity: h.capacity,
		Allocs:   h.stats.allocs,
		Frees:    h.stats.frees,
		Reallocs: h.stats.reallocs,
		Merges:   h.stats.merges,
		Failures: h.stats.failures,
	}
	h.Walk(func(b Block) bool {
		m.NumBlocks++
		if b.Free {
			m.SizeFree += b.Size
		} else {
			m.SizeInUse += b.Size
		}
		return true
	})
	if h.head == noBlock && h.live() == nil {
		// not formatted yet: the whole arena is one implicit free block
		m.SizeFree = h.capacity - HeaderSize
	}
	if m.Capacity > 0 {
		m.Utilization = float64(m.SizeInUse) / float64(m.Capacity)
	}
	return m
}

// HeapMetrics contains statistical information about a heap.
type HeapMetrics struct {
	Capacity    int     // Arena size in bytes
	SizeInUse   int     // Payload bytes in allocated blocks
	SizeFree    int     // Payload bytes in free blocks
	NumBlocks   int     // Blocks in the chain
	Utilization float64 // SizeInUse / Capacity (0.0-1.0)

	Allocs   uint64 // Successful Alloc and Calloc calls
	Frees    uint64 // Blocks freed, by Free or Realloc
	Reallocs uint64 // Successful Realloc calls that kept or moved data
	Merges   uint64 // Coalescing passes run
	Failures uint64 // Requests that ran out of memory
}

// Thread-safe metrics for SafeHeap

// SizeInUse thread-safely returns the payload bytes held by allocated blocks.
func (s *SafeHeap) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.SizeInUse()
}

// NumBlocks thread-safely returns the number of blocks in the chain.
func (s *SafeHeap) NumBlocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.NumBlocks()
}

// Utilization thread-safely returns the ratio of bytes in use to capacity.
func (s *SafeHeap) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Utilization()
}

// Metrics thread-safely returns a snapshot of heap statistics.
func (s *SafeHeap) Metrics() HeapMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Metrics()
}
