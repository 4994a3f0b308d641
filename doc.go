// Package halloc implements a fixed-capacity free-list allocator with
// malloc-family semantics over a single arena.
//
// # Overview
//
// A Heap owns one byte arena, sized once at construction and never
// grown. Every allocation is a block: an in-band header followed by the
// payload handed to the caller. Blocks tile the arena in address order
// and are chained through their headers, so the chain covers free and
// allocated blocks alike.
//
//   - Alloc searches the chain first-fit and splits the chosen block when
//     the remainder can host a block of its own.
//   - Free only flips the block's state; coalescing is deferred.
//   - When no block fits, Alloc runs one coalescing pass and searches once
//     more before failing with ErrOutOfMemory.
//   - Realloc shrinks in place, grows by absorbing a free successor, or
//     relocates and copies.
//
// # Basic Usage
//
//	h, err := halloc.NewHeap(0) // DefaultCapacity, 4 KiB
//	if err != nil { ... }
//
//	p, err := h.Alloc(128)
//	buf, _ := h.Bytes(p)
//	copy(buf, "hello")
//
//	p, err = h.Realloc(p, 512)
//	_ = h.Free(p)
//
// # Handles
//
// Allocations are addressed by Ptr, an offset into the arena plus the
// generation the block had when it was handed out. Handles to blocks that
// were freed or reused, or that belong to another heap, are rejected with
// ErrStalePtr or ErrInvalidPtr rather than silently aliasing memory.
//
// # Thread Safety
//
// Heap is not goroutine-safe. SafeHeap wraps it behind one mutex:
//
//	s, _ := halloc.NewSafeHeap(64 << 10)
//	p, _ := s.Alloc(100)
//
//	// several operations under one lock acquisition
//	_ = s.Do(func(h *halloc.Heap) error {
//		q, err := h.Realloc(p, 200)
//		...
//	})
//
// The package-level Malloc, Calloc, Realloc, Free and Dump use a
// process-wide SafeHeap returned by Default.
//
// # Memory Layout
//
// Headers are HeaderSize (24) bytes: payload size, successor offset,
// generation and flags. Payload offsets and sizes are multiples of
// Alignment (8). WithMmap places the arena in an anonymous mapping
// outside the Go heap.
package halloc
