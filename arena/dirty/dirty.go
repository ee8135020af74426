package dirty

import (
	"context"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// Range represents a dirty byte range (arena offsets).
type Range struct {
	Off int64 // Offset from the start of the arena
	Len int64 // Length in bytes
}

// End returns the offset one past the range.
func (r Range) End() int64 {
	return r.Off + r.Len
}

// Tracker accumulates dirty ranges and merges them on request.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges   []Range // Raw ranges, merged lazily
	pageSize int64
}

// NewTracker creates a tracker that rounds ranges to 4KB pages.
func NewTracker() *Tracker {
	return NewTrackerWithPageSize(standardPageSize)
}

// NewTrackerWithPageSize creates a tracker with a custom rounding unit.
// A pageSize of 1 disables rounding, which keeps exact header ranges.
func NewTrackerWithPageSize(pageSize int64) *Tracker {
	if pageSize <= 0 {
		pageSize = standardPageSize
	}
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: pageSize,
	}
}

// Add records a dirty range. Zero or negative lengths are ignored.
//
// The range is page-aligned and coalesced with other ranges only when
// Ranges or Drain is called, so Add is a plain append.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Len returns the number of raw ranges recorded since the last Reset.
func (t *Tracker) Len() int {
	return len(t.ranges)
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// DebugRanges returns the raw, uncoalesced ranges (for testing/debugging).
func (t *Tracker) DebugRanges() []Range {
	result := make([]Range, len(t.ranges))
	copy(result, t.ranges)
	return result
}

// Ranges returns page-aligned, sorted, non-overlapping ranges.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// Drain hands every coalesced range to fn in offset order and then clears
// the tracker.
//
// The context is checked before each range. If ctx is cancelled or fn
// fails, Drain stops and returns the error without clearing, so a later
// Drain revisits every range.
func (t *Tracker) Drain(ctx context.Context, fn func(Range) error) error {
	if len(t.ranges) == 0 {
		return nil
	}
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	t.Reset()
	return nil
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize

		end := r.End()
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}

		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			current.Len = max(current.End(), next.End()) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
