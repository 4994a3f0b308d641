package halloc

import (
	"io"
	"sync"
)

// SafeHeap is a mutex-protected wrapper around Heap for concurrent access.
// One lock guards the whole chain: at most one goroutine is inside the
// allocator at a time.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafeHeap creates a goroutine-safe heap over an arena of capacity bytes.
// If capacity <= 0, DefaultCapacity is used.
func NewSafeHeap(capacity int, opts ...Option) (*SafeHeap, error) {
	h, err := NewHeap(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeHeap{h: h}, nil
}

// Alloc thread-safely allocates n bytes.
func (s *SafeHeap) Alloc(n int) (Ptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Alloc(n)
}

// Calloc thread-safely allocates count*size zeroed bytes.
func (s *SafeHeap) Calloc(count, size int) (Ptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Calloc(count, size)
}

// Realloc thread-safely resizes p to n bytes.
func (s *SafeHeap) Realloc(p Ptr, n int) (Ptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Realloc(p, n)
}

// Free thread-safely frees p.
func (s *SafeHeap) Free(p Ptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Free(p)
}

// Merge thread-safely runs one coalescing pass.
func (s *SafeHeap) Merge() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Merge()
}

// Bytes thread-safely returns the payload of p. Access to the returned
// slice is not synchronized; it belongs to the owner of p.
func (s *SafeHeap) Bytes(p Ptr) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Bytes(p)
}

// Size thread-safely returns the payload size of p.
func (s *SafeHeap) Size(p Ptr) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Size(p)
}

// Capacity returns the arena size in bytes. It never changes.
func (s *SafeHeap) Capacity() int {
	return s.h.Capacity()
}

// Blocks thread-safely returns a snapshot of the block chain.
func (s *SafeHeap) Blocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Blocks()
}

// Dump thread-safely writes the block chain to w.
func (s *SafeHeap) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Dump(w)
}

func (s *SafeHeap) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.String()
}

// Release thread-safely drops the arena.
func (s *SafeHeap) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Release()
}

// Do runs fn with the lock held, handing it the unlocked heap. Use it to
// run several operations atomically. fn must not call back into s; the
// lock is not reentrant.
func (s *SafeHeap) Do(fn func(h *Heap) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.h)
}

// Unlocked returns the underlying heap for single-threaded callers.
// Mixing it with the locked methods across goroutines defeats the lock.
func (s *SafeHeap) Unlocked() *Heap {
	return s.h
}
