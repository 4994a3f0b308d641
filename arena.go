package halloc

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// arena is the fixed backing store of a heap. Block headers live in-band;
// all header access goes through the accessors below, which slice buf and
// therefore panic rather than alias memory outside the arena.
type arena struct {
	buf   []byte
	unmap func([]byte) error // nil for Go-allocated buffers
}

func newArena(capacity int, useMmap bool) (*arena, error) {
	if useMmap && mmapSupported {
		buf, unmap, err := mapAnon(capacity)
		if err != nil {
			return nil, errors.Wrapf(err, "halloc: map %d byte arena", capacity)
		}
		if buf != nil {
			return &arena{buf: buf, unmap: unmap}, nil
		}
	}
	return &arena{buf: make([]byte, capacity)}, nil
}

func (a *arena) capacity() int {
	return len(a.buf)
}

func (a *arena) size(off int) int {
	return int(binary.LittleEndian.Uint64(a.buf[off+hdrSizeOff:]))
}

func (a *arena) setSize(off, size int) {
	binary.LittleEndian.PutUint64(a.buf[off+hdrSizeOff:], uint64(size))
}

func (a *arena) next(off int) int {
	v := binary.LittleEndian.Uint64(a.buf[off+hdrNextOff:])
	if v == nextNone {
		return noBlock
	}
	return int(v)
}

func (a *arena) setNext(off, next int) {
	v := nextNone
	if next != noBlock {
		v = uint64(next)
	}
	binary.LittleEndian.PutUint64(a.buf[off+hdrNextOff:], v)
}

func (a *arena) gen(off int) uint32 {
	return binary.LittleEndian.Uint32(a.buf[off+hdrGenOff:])
}

func (a *arena) setGen(off int, gen uint32) {
	binary.LittleEndian.PutUint32(a.buf[off+hdrGenOff:], gen)
}

func (a *arena) isFree(off int) bool {
	return binary.LittleEndian.Uint32(a.buf[off+hdrFlagsOff:])&flagFree != 0
}

func (a *arena) setFree(off int, free bool) {
	var flags uint32
	if free {
		flags = flagFree
	}
	binary.LittleEndian.PutUint32(a.buf[off+hdrFlagsOff:], flags)
}

// writeHeader formats a fresh free block at off.
func (a *arena) writeHeader(off, size, next int) {
	a.setSize(off, size)
	a.setNext(off, next)
	a.setGen(off, 0)
	a.setFree(off, true)
}

// payload returns the payload of the block whose header is at off.
// The capacity is clipped so appends cannot spill into the next header.
func (a *arena) payload(off int) []byte {
	start := off + HeaderSize
	end := start + a.size(off)
	return a.buf[start:end:end]
}

func (a *arena) release() error {
	buf, unmap := a.buf, a.unmap
	a.buf, a.unmap = nil, nil
	if unmap != nil {
		return errors.Wrap(unmap(buf), "halloc: unmap arena")
	}
	return nil
}
