package halloc

import (
	"io"
	"sync"
)

var defaultHeap = sync.OnceValue(func() *SafeHeap {
	s, err := NewSafeHeap(DefaultCapacity)
	if err != nil {
		panic(err) // DefaultCapacity is always valid
	}
	return s
})

// Default returns the process-wide heap of DefaultCapacity bytes used by
// the package-level functions. It is created on first use and lives for
// the rest of the process.
func Default() *SafeHeap {
	return defaultHeap()
}

// Malloc allocates n bytes from the default heap.
func Malloc(n int) (Ptr, error) {
	return Default().Alloc(n)
}

// Calloc allocates count*size zeroed bytes from the default heap.
func Calloc(count, size int) (Ptr, error) {
	return Default().Calloc(count, size)
}

// Realloc resizes p within the default heap.
func Realloc(p Ptr, n int) (Ptr, error) {
	return Default().Realloc(p, n)
}

// Free returns p to the default heap.
func Free(p Ptr) error {
	return Default().Free(p)
}

// Dump writes the default heap's block chain to w.
func Dump(w io.Writer) error {
	return Default().Dump(w)
}
