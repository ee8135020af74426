package arena

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/region"
)

// FirstFit is an arena allocator using a single address-ordered block list.
// - O(n) first-fit allocation, stopping at the first free block that fits
// - Split only when the remainder can host another header
// - O(n) coalescing pass over the whole list on every free
type FirstFit struct {
	mem      *region.Region
	data     []byte // mem.Bytes(), nil after Close
	capacity int32

	dt  DirtyTracker
	log *slog.Logger

	// ready stays false until the first Allocate writes the head header.
	ready bool

	stats allocatorStats
}

// allocatorStats holds cumulative operation counters.
type allocatorStats struct {
	AllocCalls     int   // Total Allocate() calls
	FailedAllocs   int   // Allocate() calls that returned an error
	FreeCalls      int   // Total Deallocate() calls with a non-nil ref
	FailedFrees    int   // Deallocate() calls rejected as invalid or double frees
	SplitCount     int   // Number of block splits
	CoalesceCount  int   // Number of absorbed neighbour blocks
	BytesAllocated int64 // Total payload bytes requested by successful Allocate()
	BytesFreed     int64 // Total block payload bytes released by Deallocate()
}

// NewFirstFit creates an allocator over a fresh arena.
//
// Parameters:
//   - cfg: capacity, backing, tracker and logger (use nil for DefaultConfig)
func NewFirstFit(cfg *Config) (*FirstFit, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}

	capacity := cfg.capacity()
	if capacity <= HeaderSize {
		return nil, fmt.Errorf("%w: %d (must exceed header size %d)", ErrInvalidCapacity, capacity, HeaderSize)
	}

	mem, err := region.New(int(capacity), cfg.Backing)
	if err != nil {
		return nil, err
	}

	return &FirstFit{
		mem:      mem,
		data:     mem.Bytes(),
		capacity: capacity,
		dt:       cfg.Tracker,
		log:      cfg.logger(),
	}, nil
}

// Capacity returns the arena size in bytes.
func (a *FirstFit) Capacity() int32 {
	return a.capacity
}

// Backing reports the memory source actually in use.
func (a *FirstFit) Backing() Backing {
	return a.mem.Kind()
}

// Close releases the arena memory. Every ref and payload slice handed out
// becomes invalid; later calls return ErrClosed.
func (a *FirstFit) Close() error {
	if a.data == nil {
		return nil
	}
	a.data = nil
	return a.mem.Close()
}

// Bytes returns the payload of a live allocation, len equal to the
// requested size.
func (a *FirstFit) Bytes(ref Ref) ([]byte, error) {
	if a.data == nil {
		return nil, ErrClosed
	}
	off, h, err := a.locate(ref)
	if err != nil {
		return nil, err
	}
	if h.Free {
		return nil, fmt.Errorf("%w: ref %d", ErrDoubleFree, ref)
	}
	return a.payload(off, h), nil
}

// ensureInit writes the head header covering the whole arena. The block
// list is created on first use and never torn down.
func (a *FirstFit) ensureInit() {
	if a.ready {
		return
	}
	a.putHeader(0, format.Header{
		Size: uint32(a.capacity) - HeaderSize,
		Free: true,
		Next: format.NoNext,
	})
	a.ready = true
}

// ============================================================================
// Header access
// ============================================================================

// readHeader decodes the header at off and checks that its block ends
// inside the arena.
func (a *FirstFit) readHeader(off uint32) (format.Header, error) {
	h, err := format.ReadHeader(a.data, off)
	if err != nil {
		return format.Header{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if uint64(off)+HeaderSize+uint64(h.Size) > uint64(a.capacity) {
		return format.Header{}, fmt.Errorf("%w: block at %d (size %d) overruns capacity %d",
			ErrCorrupt, off, h.Size, a.capacity)
	}
	return h, nil
}

// putHeader encodes h at off and reports the write.
func (a *FirstFit) putHeader(off uint32, h format.Header) {
	format.PutHeader(a.data, off, h)
	if a.dt != nil {
		a.dt.Add(int(off), HeaderSize)
	}
}

// nextOffset validates the link out of the block at off.
func nextOffset(off uint32, h format.Header) (uint32, error) {
	if h.Next != h.End(off) {
		return 0, fmt.Errorf("%w: block at %d links to %d, expected %d",
			ErrCorrupt, off, h.Next, h.End(off))
	}
	return h.Next, nil
}

// walk visits every block in list order until yield returns false.
func (a *FirstFit) walk(yield func(off uint32, h format.Header) bool) error {
	off := uint32(0)
	for {
		h, err := a.readHeader(off)
		if err != nil {
			return err
		}
		if !yield(off, h) || h.Last() {
			return nil
		}
		if off, err = nextOffset(off, h); err != nil {
			return err
		}
	}
}

// payload returns the caller-visible slice of an allocated block. The
// capacity extends over any slack in the block.
func (a *FirstFit) payload(off uint32, h format.Header) []byte {
	start := off + HeaderSize
	return a.data[start : start+h.Requested : start+h.Size]
}

// Compile-time interface check
var _ Allocator = (*FirstFit)(nil)
