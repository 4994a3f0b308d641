package halloc

import "fmt"

// Ptr is a handle to an allocation. It carries the payload offset and the
// generation the block had when it was handed out, so a handle to a block
// that has since been freed or reused is rejected instead of aliasing
// someone else's memory.
//
// The zero Ptr is the nil handle. Free and Realloc accept it.
type Ptr struct {
	off int
	gen uint32
}

// IsNil reports whether p is the nil handle.
func (p Ptr) IsNil() bool {
	return p.off == 0
}

// Offset returns the payload offset of p within its arena, 0 for nil.
func (p Ptr) Offset() int {
	return p.off
}

func (p Ptr) String() string {
	if p.IsNil() {
		return "Ptr(nil)"
	}
	return fmt.Sprintf("Ptr(@%d gen=%d)", p.off, p.gen)
}

// header returns the header offset of the block p points into.
func (p Ptr) header() int {
	return p.off - HeaderSize
}
