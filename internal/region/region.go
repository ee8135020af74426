// Package region acquires the single contiguous byte buffer that backs an
// allocator arena.
package region

import (
	"errors"
	"fmt"
)

// Kind selects where arena memory comes from.
type Kind uint8

const (
	// KindHeap backs the arena with an ordinary Go slice.
	KindHeap Kind = iota
	// KindMmap backs the arena with an anonymous private mapping outside the
	// Go heap. Platforms without mmap fall back to KindHeap.
	KindMmap
)

// ErrInvalidSize indicates a non-positive region size.
var ErrInvalidSize = errors.New("region: invalid size")

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindMmap:
		return "mmap"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Region owns a fixed-size byte buffer until Close.
type Region struct {
	data    []byte
	kind    Kind
	release func([]byte) error
}

// New returns a zeroed region of exactly size bytes.
func New(size int, kind Kind) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if kind == KindMmap {
		data, err := mapAnon(size)
		if err != nil {
			return nil, fmt.Errorf("region: map %d bytes: %w", size, err)
		}
		if data != nil {
			return &Region{data: data, kind: KindMmap, release: unmapAnon}, nil
		}
	}
	return &Region{data: make([]byte, size), kind: KindHeap}, nil
}

// Bytes returns the backing buffer, or nil after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Kind reports the backing actually in use, which may differ from the
// requested kind on platforms without mmap.
func (r *Region) Kind() Kind {
	return r.kind
}

// Close releases the buffer. Calling Close more than once is a no-op.
func (r *Region) Close() error {
	data := r.data
	if data == nil {
		return nil
	}
	r.data = nil
	if r.release == nil {
		return nil
	}
	return r.release(data)
}
