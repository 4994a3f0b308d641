package halloc

import "fmt"

// Header layout, little endian:
//
//	0..8   payload size in bytes
//	8..16  header offset of the successor block, all ones at the tail
//	16..20 generation of the current allocation, 0 while free
//	20..24 flags
const (
	hdrSizeOff  = 0
	hdrNextOff  = 8
	hdrGenOff   = 16
	hdrFlagsOff = 20

	flagFree = uint32(1)

	nextNone = ^uint64(0)
	noBlock  = -1
)

// Block describes one block of the chain as seen by Walk and Blocks.
type Block struct {
	Index  int  // position in the chain, 0 for the block at offset 0
	Offset int  // header offset within the arena
	Size   int  // payload bytes
	Free   bool // true if the block is available
	Next   int  // header offset of the successor, -1 at the tail
}

// Payload returns the offset of the block's first payload byte.
func (b Block) Payload() int {
	return b.Offset + HeaderSize
}

// End returns the offset one past the block's last payload byte.
func (b Block) End() int {
	return b.Payload() + b.Size
}

func (b Block) String() string {
	state := "used"
	if b.Free {
		state = "free"
	}
	next := "nil"
	if b.Next != noBlock {
		next = fmt.Sprintf("@%d", b.Next)
	}
	return fmt.Sprintf("#%d @%d size=%d %s next=%s", b.Index, b.Offset, b.Size, state, next)
}
