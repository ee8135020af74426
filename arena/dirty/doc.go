// Package dirty tracks which byte ranges of an allocator arena have had
// their block headers rewritten.
//
// # Overview
//
// The allocator reports every header write through the minimal
// DirtyTracker interface. A Tracker accumulates those ranges cheaply and,
// on demand, rounds them out to page boundaries, sorts them, and merges
// overlapping or adjacent ranges:
//
//	Writes at: [0x10, 0x1010, 0x1020, 0x5000] → Ranges: [0x0-0x2000, 0x5000-0x6000]
//
// Consumers that mirror or checkpoint arena metadata use Drain to visit the
// merged ranges once and clear the tracker.
//
// # Usage
//
//	dt := dirty.NewTracker()
//	a, err := arena.New(&arena.Config{Capacity: 1 << 20, Tracker: dt})
//	...
//	err = dt.Drain(ctx, func(r dirty.Range) error {
//	    // copy a.Bytes()[r.Off:r.Off+r.Len] somewhere
//	    return nil
//	})
//
// # Thread Safety
//
// Tracker instances are not thread-safe. Callers must synchronize access
// externally, exactly as they must for the allocator that feeds them.
package dirty
