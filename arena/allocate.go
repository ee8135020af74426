package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Allocate reserves size payload bytes using first-fit search.
//
// The list is walked from the head and the first free block with at least
// size payload bytes is taken. When that block exceeds size by more than a
// header, the tail becomes a new free block linked right after it;
// otherwise the whole block is allocated and the remainder stays as slack.
//
// Errors:
//   - ErrInvalidSize: size <= 0 or size > Capacity()
//   - ErrOutOfMemory: no free block holds size bytes (the arena never grows)
func (a *FirstFit) Allocate(size int32) (Ref, []byte, error) {
	if a.data == nil {
		return NilRef, nil, ErrClosed
	}
	a.stats.AllocCalls++

	if size <= 0 || size > a.capacity {
		a.stats.FailedAllocs++
		return NilRef, nil, fmt.Errorf("%w: %d (capacity %d)", ErrInvalidSize, size, a.capacity)
	}
	a.ensureInit()

	need := uint32(size)
	var (
		fitOff  uint32
		fit     format.Header
		found   bool
		largest uint32
		scanned int
	)
	err := a.walk(func(off uint32, h format.Header) bool {
		scanned++
		if !h.Free {
			return true
		}
		if h.Size >= need {
			fitOff, fit, found = off, h, true
			return false
		}
		largest = max(largest, h.Size)
		return true
	})
	if err != nil {
		a.stats.FailedAllocs++
		return NilRef, nil, err
	}
	if !found {
		a.stats.FailedAllocs++
		a.log.Debug("allocate: no fit",
			"size", size,
			"blocks", scanned,
			"largest_free", largest,
		)
		return NilRef, nil, fmt.Errorf("%w: need %d, largest free %d", ErrOutOfMemory, size, largest)
	}

	fit = a.take(fitOff, fit, need)
	a.stats.BytesAllocated += int64(need)
	return Ref(fitOff + HeaderSize), a.payload(fitOff, fit), nil
}

// take marks the free block at off allocated for need bytes, splitting off
// the tail when it can hold a header plus at least one payload byte.
func (a *FirstFit) take(off uint32, h format.Header, need uint32) format.Header {
	if h.Size > need+HeaderSize {
		tailOff := off + HeaderSize + need
		tail := format.Header{
			Size: h.Size - need - HeaderSize,
			Free: true,
			Next: h.Next,
		}
		a.putHeader(tailOff, tail)
		a.stats.SplitCount++
		a.log.Debug("allocate: split",
			"off", off,
			"size", need,
			"tail_off", tailOff,
			"remainder", tail.Size,
		)

		h.Size = need
		h.Next = tailOff
	} else {
		a.log.Debug("allocate: whole block",
			"off", off,
			"size", need,
			"slack", h.Size-need,
		)
	}

	h.Free = false
	h.Requested = need
	a.putHeader(off, h)
	return h
}
