package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Deallocate returns the block behind ref to the arena and coalesces free
// neighbours.
//
// The ref must be the payload offset of a block currently on the list.
// Anything else is rejected without touching the arena:
//   - ErrInvalidFree: ref is out of bounds, points into a payload, or was
//     never handed out
//   - ErrDoubleFree: the block is already free, or was absorbed into a free
//     neighbour after an earlier Deallocate
func (a *FirstFit) Deallocate(ref Ref) error {
	if a.data == nil {
		return ErrClosed
	}
	if ref == NilRef {
		return nil
	}
	a.stats.FreeCalls++

	off, h, err := a.locate(ref)
	if err != nil {
		a.stats.FailedFrees++
		return err
	}
	if h.Free {
		a.stats.FailedFrees++
		return fmt.Errorf("%w: ref %d", ErrDoubleFree, ref)
	}

	h.Free = true
	h.Requested = 0
	a.putHeader(off, h)
	a.stats.BytesFreed += int64(h.Size)

	return a.coalesce()
}

// locate finds the header whose payload starts at ref by walking the list.
func (a *FirstFit) locate(ref Ref) (uint32, format.Header, error) {
	if !a.ready || uint32(ref) < HeaderSize || uint32(ref) > uint32(a.capacity) {
		return 0, format.Header{}, fmt.Errorf("%w: ref %d outside arena", ErrInvalidFree, ref)
	}
	target := uint32(ref) - HeaderSize

	var (
		hit   format.Header
		found bool
		lost  error
	)
	err := a.walk(func(off uint32, h format.Header) bool {
		switch {
		case off == target:
			hit, found = h, true
			return false
		case target < h.End(off):
			// Inside this block. A header signature here means a block
			// that was absorbed when a neighbour freed.
			if h.Free && format.IsHeader(a.data, target) {
				lost = fmt.Errorf("%w: ref %d was merged into free block at %d", ErrDoubleFree, ref, off)
			} else {
				lost = fmt.Errorf("%w: ref %d points inside block at %d", ErrInvalidFree, ref, off)
			}
			return false
		default:
			return true
		}
	})
	switch {
	case err != nil:
		return 0, format.Header{}, err
	case found:
		return target, hit, nil
	case lost != nil:
		return 0, format.Header{}, lost
	default:
		return 0, format.Header{}, fmt.Errorf("%w: ref %d", ErrInvalidFree, ref)
	}
}

// coalesce merges every pair of list-adjacent free blocks in one pass.
//
// When the current block and its successor are both free, the successor is
// absorbed (its header bytes stay in the buffer, unlinked) and the enlarged
// block is checked again against its new successor before moving on. A
// freed block therefore merges with both neighbours regardless of where it
// sits in the list.
func (a *FirstFit) coalesce() error {
	off := uint32(0)
	cur, err := a.readHeader(off)
	if err != nil {
		return err
	}
	for !cur.Last() {
		nextOff, err := nextOffset(off, cur)
		if err != nil {
			return err
		}
		next, err := a.readHeader(nextOff)
		if err != nil {
			return err
		}

		if cur.Free && next.Free {
			cur.Size += HeaderSize + next.Size
			cur.Next = next.Next
			a.putHeader(off, cur)
			a.stats.CoalesceCount++
			a.log.Debug("deallocate: coalesce",
				"off", off,
				"absorbed", nextOff,
				"size", cur.Size,
			)
			continue
		}

		off, cur = nextOff, next
	}
	return nil
}
