// Package arena provides a first-fit heap allocator over a single
// fixed-capacity memory arena.
//
// # Overview
//
// Every block in the arena starts with a 16-byte header (payload size, free
// flag, offset of the next header). The headers form a singly linked list in
// strictly increasing offset order which always tiles the whole arena, free
// and allocated blocks alike. There is no metadata outside the arena buffer.
//
// # Allocator Interface
//
//   - Allocate(size): first-fit search, splitting the chosen block when the
//     remainder can hold another header
//   - Deallocate(ref): mark the block free, then coalesce list-adjacent free
//     blocks in one pass over the list
//
// # Usage Example
//
//	a, err := arena.NewFirstFit(nil) // 100 KiB, heap backed
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	ref, buf, err := a.Allocate(128)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, free the block
//	err = a.Deallocate(ref)
//
// # Splitting
//
// A free block of payload size S serving a request of n bytes is split only
// when S > n + HeaderSize. The new free block starts right after the n
// payload bytes and gets S - n - HeaderSize bytes. Otherwise the whole block
// is handed out and the unused tail stays inside it as slack.
//
// # Refs
//
// A Ref is the arena offset of a payload. NilRef (0) is never a payload
// offset since at least one header precedes every payload. Deallocate
// verifies that a Ref names a block currently on the list, so foreign and
// repeated frees are reported as ErrInvalidFree and ErrDoubleFree.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
package arena
