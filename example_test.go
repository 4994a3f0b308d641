package halloc_test

import (
	"fmt"
	"os"
	"sync"

	"github.com/pavanmanishd/halloc"
	"github.com/pkg/errors"
)

// Example demonstrates basic heap usage
func Example() {
	h, err := halloc.NewHeap(4096)
	if err != nil {
		panic(err)
	}
	defer h.Release()

	a, _ := h.Alloc(100) // rounded up to 104
	b, _ := h.Alloc(128)

	buf, _ := h.Bytes(a)
	copy(buf, "hello")
	fmt.Printf("a holds %d bytes\n", len(buf))

	h.Free(a)
	a, _ = h.Alloc(64) // first fit: the freed 104 byte block is split
	fmt.Println("reused first block:", a.Offset() == halloc.HeaderSize)

	h.Free(a)
	h.Free(b)
	h.Merge()
	fmt.Println("blocks after merge:", h.NumBlocks())

	// Output:
	// a holds 104 bytes
	// reused first block: true
	// blocks after merge: 1
}

// ExampleHeap_Dump lays out two allocations on a fresh 4 KiB heap.
func ExampleHeap_Dump() {
	h, _ := halloc.NewHeap(4096)
	h.Alloc(128)
	h.Alloc(128)

	h.Dump(os.Stdout)

	// Output:
	// heap capacity=4.0 KiB used=256 B blocks=3
	// #0 @0 size=128 used next=@152
	// #1 @152 size=128 used next=@304
	// #2 @304 size=3768 free next=nil
}

// ExampleHeap_Realloc shows a block moving when its neighbour is taken
// and growing in place when it is not.
func ExampleHeap_Realloc() {
	h, _ := halloc.NewHeap(4096)
	a, _ := h.Alloc(128)
	h.Alloc(128)

	c, _ := h.Realloc(a, 512)
	fmt.Println("relocated:", c.Offset() != a.Offset())

	d, _ := h.Realloc(c, 1024)
	fmt.Println("grown in place:", d.Offset() == c.Offset())

	err := h.Free(a)
	fmt.Println("old handle stale:", errors.Is(err, halloc.ErrStalePtr))

	for _, blk := range h.Blocks() {
		fmt.Println(blk)
	}

	// Output:
	// relocated: true
	// grown in place: true
	// old handle stale: true
	// #0 @0 size=128 free next=@152
	// #1 @152 size=128 used next=@304
	// #2 @304 size=1024 used next=@1352
	// #3 @1352 size=2720 free next=nil
}

// ExampleSafeHeap demonstrates thread-safe usage
func ExampleSafeHeap() {
	s, _ := halloc.NewSafeHeap(64 * 1024)
	defer s.Release()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p, err := s.Alloc(64 + j)
				if err != nil {
					continue
				}
				buf, _ := s.Bytes(p)
				buf[0] = byte(id)
				s.Free(p)
			}
		}(i)
	}
	wg.Wait()

	s.Merge()
	fmt.Printf("in use: %d bytes, blocks: %d\n", s.SizeInUse(), s.NumBlocks())

	// Output:
	// in use: 0 bytes, blocks: 1
}

// ExampleHeapMetrics shows the statistics a heap keeps
func ExampleHeapMetrics() {
	h, _ := halloc.NewHeap(1024)
	p, _ := h.Alloc(256)
	h.Realloc(p, 128)
	h.Alloc(2048)

	m := h.Metrics()
	fmt.Printf("Capacity: %d bytes\n", m.Capacity)
	fmt.Printf("In use: %d bytes\n", m.SizeInUse)
	fmt.Printf("Utilization: %.1f%%\n", m.Utilization*100)
	fmt.Printf("Allocs: %d, Reallocs: %d, Failures: %d\n", m.Allocs, m.Reallocs, m.Failures)

	// Output:
	// Capacity: 1024 bytes
	// In use: 128 bytes
	// Utilization: 12.5%
	// Allocs: 1, Reallocs: 1, Failures: 1
}

// ExampleMalloc uses the process-wide default heap.
func ExampleMalloc() {
	p, err := halloc.Malloc(100)
	if err != nil {
		panic(err)
	}
	defer halloc.Free(p)

	buf, _ := halloc.Default().Bytes(p)
	fmt.Println(len(buf))

	// Output:
	// 104
}
