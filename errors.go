package halloc

import "github.com/pkg/errors"

var (
	// ErrOutOfMemory is returned when no free block can hold a request,
	// even after one coalescing pass.
	ErrOutOfMemory = errors.New("halloc: out of memory")
	// ErrOverflow is returned by Calloc when count*size overflows int.
	ErrOverflow = errors.New("halloc: size overflow")
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("halloc: invalid size")
	// ErrInvalidCapacity is returned when an arena cannot hold a single block.
	ErrInvalidCapacity = errors.New("halloc: invalid capacity")
	// ErrInvalidPtr is returned for handles that do not address a block
	// of this heap.
	ErrInvalidPtr = errors.New("halloc: invalid pointer")
	// ErrStalePtr is returned for handles whose block was freed or reused.
	ErrStalePtr = errors.New("halloc: stale pointer")
	// ErrReleased is returned by every operation after Release.
	ErrReleased = errors.New("halloc: heap released")
)
