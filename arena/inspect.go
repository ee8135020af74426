package arena

import (
	"fmt"
	"iter"

	"github.com/joshuapare/heapkit/internal/format"
)

// Blocks returns an iterator over the block list in arena order.
//
// Before the first Allocate the arena reports the single free block it will
// be initialized with, without writing it. Iteration stops early if the
// list is corrupt; use Verify to get the error.
func (a *FirstFit) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		if a.data == nil {
			return
		}
		if !a.ready {
			yield(Block{Offset: 0, Size: uint32(a.capacity) - HeaderSize, Free: true})
			return
		}
		_ = a.walk(func(off uint32, h format.Header) bool {
			return yield(blockOf(off, h))
		})
	}
}

func blockOf(off uint32, h format.Header) Block {
	return Block{
		Offset:    off,
		Size:      h.Size,
		Free:      h.Free,
		Requested: h.Requested,
	}
}

// Verify checks the block list invariants:
//   - blocks start at offset 0 and tile [0, Capacity()) with no gap or overlap
//   - every header carries the signature
//   - no two list-adjacent blocks are both free
//   - a free block records no request; an allocated one requests 1..Size bytes
//
// Violations are reported as ErrCorrupt with the offending offset.
func (a *FirstFit) Verify() error {
	if a.data == nil {
		return ErrClosed
	}
	if !a.ready {
		return nil
	}

	var (
		prevFree bool
		end      uint32
		count    int
		bad      error
	)
	err := a.walk(func(off uint32, h format.Header) bool {
		switch {
		case off != end:
			bad = fmt.Errorf("%w: block %d at %d, expected %d", ErrCorrupt, count, off, end)
		case h.Free && prevFree:
			bad = fmt.Errorf("%w: adjacent free blocks at %d", ErrCorrupt, off)
		case h.Free && h.Requested != 0:
			bad = fmt.Errorf("%w: free block at %d records request %d", ErrCorrupt, off, h.Requested)
		case !h.Free && (h.Requested == 0 || h.Requested > h.Size):
			bad = fmt.Errorf("%w: block at %d requests %d of %d bytes", ErrCorrupt, off, h.Requested, h.Size)
		}
		if bad != nil {
			return false
		}
		prevFree = h.Free
		end = h.End(off)
		count++
		return true
	})
	if err != nil {
		return err
	}
	if bad != nil {
		return bad
	}
	if end != uint32(a.capacity) {
		return fmt.Errorf("%w: list ends at %d, capacity %d", ErrCorrupt, end, a.capacity)
	}
	return nil
}
