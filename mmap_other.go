//go:build !unix

package halloc

const mmapSupported = false

// mapAnon reports no mapping; newArena falls back to a Go slice.
func mapAnon(size int) ([]byte, func([]byte) error, error) {
	return nil, nil, nil
}
