package halloc

import "github.com/pkg/errors"

// Alloc returns a block of at least n bytes, rounded up to a multiple of
// Alignment. Alloc(0) is legal and yields a minimum block.
//
// The chain is searched first-fit in address order. When nothing fits,
// one coalescing pass runs and the chain is searched once more; if that
// also fails the result is ErrOutOfMemory.
func (h *Heap) Alloc(n int) (Ptr, error) {
	if err := h.live(); err != nil {
		return Ptr{}, err
	}
	if n < 0 {
		return Ptr{}, errors.Wrapf(ErrInvalidSize, "alloc %d bytes", n)
	}
	off, err := h.alloc(n)
	if err != nil {
		return Ptr{}, err
	}
	h.stats.allocs++
	return h.ptr(off), nil
}

// Calloc allocates count*size bytes and zeroes them. An overflowing
// product fails with ErrOverflow before the arena is touched.
func (h *Heap) Calloc(count, size int) (Ptr, error) {
	if err := h.live(); err != nil {
		return Ptr{}, err
	}
	if count < 0 || size < 0 {
		return Ptr{}, errors.Wrapf(ErrInvalidSize, "calloc %d x %d bytes", count, size)
	}
	total := count * size
	if count != 0 && total/count != size {
		return Ptr{}, errors.Wrapf(ErrOverflow, "calloc %d x %d bytes", count, size)
	}
	off, err := h.alloc(total)
	if err != nil {
		return Ptr{}, err
	}
	clear(h.arena.payload(off))
	h.stats.allocs++
	return h.ptr(off), nil
}

// Realloc resizes the allocation p to n bytes.
//
// A nil p behaves as Alloc(n). n == 0 frees p and returns the nil handle.
// Otherwise, in order of preference:
//
//   - the block already holds n bytes: excess is split off, p is returned;
//   - the next block is free and both together hold n bytes: it is
//     absorbed, the excess split off, p is returned;
//   - a new block is allocated, min(old, new) bytes are copied and p is
//     freed.
//
// If the new block cannot be allocated, p stays allocated and untouched.
func (h *Heap) Realloc(p Ptr, n int) (Ptr, error) {
	if p.IsNil() {
		return h.Alloc(n)
	}
	if err := h.live(); err != nil {
		return Ptr{}, err
	}
	if n < 0 {
		return Ptr{}, errors.Wrapf(ErrInvalidSize, "realloc %v to %d bytes", p, n)
	}
	off, err := h.lookup(p)
	if err != nil {
		return Ptr{}, err
	}
	if n == 0 {
		h.free(off)
		return Ptr{}, nil
	}
	size, ok := align8(n)
	if !ok {
		h.stats.failures++
		return Ptr{}, errors.Wrapf(ErrOutOfMemory, "realloc %v to %d bytes", p, n)
	}

	cur := h.arena.size(off)
	if cur >= size {
		h.split(off, size)
		h.stats.reallocs++
		return p, nil
	}
	if nxt := h.arena.next(off); nxt != noBlock && h.arena.isFree(nxt) &&
		cur+HeaderSize+h.arena.size(nxt) >= size {
		h.absorb(off, nxt)
		h.split(off, size)
		h.stats.reallocs++
		return p, nil
	}

	noff, err := h.alloc(n)
	if err != nil {
		return Ptr{}, errors.WithMessagef(err, "realloc %v", p)
	}
	copy(h.arena.payload(noff), h.arena.payload(off))
	h.free(off)
	h.stats.reallocs++
	h.logDebug("halloc: realloc relocated", "from", off, "to", noff, "size", size)
	return h.ptr(noff), nil
}

// Free returns p's block to the chain. Free of the nil handle is a no-op.
// Adjacent free blocks are not coalesced here; that is deferred to the
// next allocation that fails to fit, or an explicit Merge.
func (h *Heap) Free(p Ptr) error {
	if p.IsNil() {
		return nil
	}
	if err := h.live(); err != nil {
		return err
	}
	off, err := h.lookup(p)
	if err != nil {
		return err
	}
	h.free(off)
	return nil
}

// Bytes returns the payload of p. Its length is the block size, which may
// exceed the size requested. The slice aliases the arena and becomes
// invalid once p is freed, moved by Realloc, or the heap is released.
func (h *Heap) Bytes(p Ptr) ([]byte, error) {
	if err := h.live(); err != nil {
		return nil, err
	}
	off, err := h.lookup(p)
	if err != nil {
		return nil, err
	}
	return h.arena.payload(off), nil
}

// Size returns the payload size of the live allocation p.
func (h *Heap) Size(p Ptr) (int, error) {
	if err := h.live(); err != nil {
		return 0, err
	}
	off, err := h.lookup(p)
	if err != nil {
		return 0, err
	}
	return h.arena.size(off), nil
}

//---- local functions

func (h *Heap) alloc(n int) (int, error) {
	size, ok := align8(n)
	if !ok {
		h.stats.failures++
		return noBlock, errors.Wrapf(ErrOutOfMemory, "alloc %d bytes", n)
	}
	h.format()

	off := h.firstFit(size)
	if off == noBlock {
		h.merge()
		off = h.firstFit(size)
	}
	if off == noBlock {
		h.stats.failures++
		h.logDebug("halloc: out of memory", "size", size)
		return noBlock, errors.Wrapf(ErrOutOfMemory, "alloc %d bytes", n)
	}

	h.split(off, size)
	h.arena.setFree(off, false)
	h.arena.setGen(off, nextGen())
	return off, nil
}

func (h *Heap) free(off int) {
	h.arena.setFree(off, true)
	h.arena.setGen(off, 0)
	h.stats.frees++
}
