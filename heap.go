package halloc

import (
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"
)

// generation hands out allocation generations for every heap in the
// process, so a handle from one heap never matches a block of another.
var generation atomic.Uint32

func nextGen() uint32 {
	for {
		if g := generation.Add(1); g != 0 {
			return g
		}
	}
}

// Heap is a first-fit free-list allocator over one fixed arena.
// Not goroutine-safe. Use SafeHeap for concurrent access.
//
// Blocks tile the arena in address order and are chained through their
// headers, free and allocated alike. The arena is formatted as a single
// free block on the first allocation.
type Heap struct {
	arena    *arena
	capacity int
	head     int // header offset of the first block, noBlock until formatted
	logger   *slog.Logger
	stats    counters
}

type counters struct {
	allocs   uint64
	frees    uint64
	reallocs uint64
	merges   uint64
	failures uint64
}

// NewHeap creates a heap over an arena of capacity bytes.
// If capacity <= 0, DefaultCapacity is used. Capacity is rounded down to
// a multiple of Alignment and must hold at least one header plus
// MinSplitPayload bytes.
func NewHeap(capacity int, opts ...Option) (*Heap, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	capacity &^= Alignment - 1
	if capacity < HeaderSize+MinSplitPayload {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d below %d", capacity, HeaderSize+MinSplitPayload)
	}

	cfg := newConfig(opts)
	a, err := newArena(capacity, cfg.mmap)
	if err != nil {
		return nil, err
	}
	return &Heap{
		arena:    a,
		capacity: capacity,
		head:     noBlock,
		logger:   cfg.logger,
	}, nil
}

// Capacity returns the arena size in bytes, headers included.
func (h *Heap) Capacity() int {
	return h.capacity
}

// Merge runs one coalescing pass over the chain and returns the number
// of blocks absorbed into a free predecessor.
func (h *Heap) Merge() (int, error) {
	if err := h.live(); err != nil {
		return 0, err
	}
	return h.merge(), nil
}

// Release drops the arena. Every later call on the heap fails with
// ErrReleased, and byte slices obtained from Bytes must not be used.
func (h *Heap) Release() error {
	if err := h.live(); err != nil {
		return err
	}
	h.head = noBlock
	err := h.arena.release()
	h.logInfo("halloc: heap released", "allocs", h.stats.allocs, "frees", h.stats.frees)
	return err
}

//---- local functions

func (h *Heap) live() error {
	if h.arena.buf == nil {
		return ErrReleased
	}
	return nil
}

// format lays the whole arena out as one free block, once.
func (h *Heap) format() {
	if h.head != noBlock {
		return
	}
	h.arena.writeHeader(0, h.capacity-HeaderSize, noBlock)
	h.head = 0
	h.logDebug("halloc: arena formatted", "payload", h.capacity-HeaderSize)
}

// firstFit returns the first free block, in address order, whose payload
// holds size bytes, or noBlock.
func (h *Heap) firstFit(size int) int {
	for off := h.head; off != noBlock; off = h.arena.next(off) {
		if h.arena.isFree(off) && h.arena.size(off) >= size {
			return off
		}
	}
	return noBlock
}

// split shrinks the block at off to size bytes when the remainder can
// host a header plus MinSplitPayload bytes. The remainder becomes a free
// block linked right after off. Otherwise the block keeps its slack.
func (h *Heap) split(off, size int) bool {
	cur := h.arena.size(off)
	if cur < size+HeaderSize+MinSplitPayload {
		return false
	}
	rest := off + HeaderSize + size
	h.arena.writeHeader(rest, cur-size-HeaderSize, h.arena.next(off))
	h.arena.setSize(off, size)
	h.arena.setNext(off, rest)
	return true
}

// absorb folds the block at nxt, which must physically follow off, into off.
func (h *Heap) absorb(off, nxt int) {
	h.arena.setSize(off, h.arena.size(off)+HeaderSize+h.arena.size(nxt))
	h.arena.setNext(off, h.arena.next(nxt))
}

// merge is a single forward pass. After an absorption the same block is
// examined again so runs of three or more free blocks collapse in one pass.
func (h *Heap) merge() int {
	merged := 0
	for off := h.head; off != noBlock; {
		nxt := h.arena.next(off)
		if nxt == noBlock {
			break
		}
		if h.arena.isFree(off) && h.arena.isFree(nxt) {
			h.absorb(off, nxt)
			merged++
			continue
		}
		off = nxt
	}
	h.stats.merges++
	h.logDebug("halloc: merge pass", "merged", merged)
	return merged
}

// lookup resolves p to its block's header offset. Handles outside the
// arena, not on a block boundary, or for a freed or reused block are
// rejected.
func (h *Heap) lookup(p Ptr) (int, error) {
	if p.off < HeaderSize || p.off > h.capacity || p.off%Alignment != 0 {
		return noBlock, errors.Wrapf(ErrInvalidPtr, "%v", p)
	}
	want := p.header()
	for off := h.head; off != noBlock && off <= want; off = h.arena.next(off) {
		if off != want {
			continue
		}
		if h.arena.isFree(off) || h.arena.gen(off) != p.gen {
			return noBlock, errors.Wrapf(ErrStalePtr, "%v", p)
		}
		return off, nil
	}
	return noBlock, errors.Wrapf(ErrInvalidPtr, "%v", p)
}

func (h *Heap) ptr(off int) Ptr {
	return Ptr{off: off + HeaderSize, gen: h.arena.gen(off)}
}
