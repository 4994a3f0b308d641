package halloc

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Walk calls fn for every block in address order until fn returns false.
// It does not modify the heap. An unformatted or released heap has no blocks.
func (h *Heap) Walk(fn func(Block) bool) {
	if h.live() != nil {
		return
	}
	for i, off := 0, h.head; off != noBlock; i, off = i+1, h.arena.next(off) {
		b := Block{
			Index:  i,
			Offset: off,
			Size:   h.arena.size(off),
			Free:   h.arena.isFree(off),
			Next:   h.arena.next(off),
		}
		if !fn(b) {
			return
		}
	}
}

// Blocks returns a snapshot of the block chain.
func (h *Heap) Blocks() []Block {
	var blocks []Block
	h.Walk(func(b Block) bool {
		blocks = append(blocks, b)
		return true
	})
	return blocks
}

// Dump writes a human-readable listing of the chain to w, one line per
// block after a summary line. The format is meant for people, not parsers.
func (h *Heap) Dump(w io.Writer) error {
	if err := h.live(); err != nil {
		return err
	}
	blocks := h.Blocks()
	used := 0
	for _, b := range blocks {
		if !b.Free {
			used += b.Size
		}
	}
	_, err := fmt.Fprintf(w, "heap capacity=%s used=%s blocks=%d\n",
		humanize.IBytes(uint64(h.capacity)), humanize.IBytes(uint64(used)), len(blocks))
	if err != nil {
		return err
	}
	for _, b := range blocks {
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (h *Heap) String() string {
	var sb strings.Builder
	if err := h.Dump(&sb); err != nil {
		return fmt.Sprintf("heap(%v)", err)
	}
	return sb.String()
}
