package arena

import "github.com/joshuapare/heapkit/internal/format"

// Ref is the arena offset of an allocated payload.
type Ref uint32

// NilRef is the zero Ref. Allocate returns it on failure and Deallocate
// ignores it.
const NilRef Ref = 0

// HeaderSize is the per-block overhead in bytes.
const HeaderSize = format.HeaderSize

// DefaultCapacity is the arena size used when none is configured.
const DefaultCapacity = format.DefaultCapacity

// Allocator defines the two primitives every arena allocator supports.
type Allocator interface {
	// Allocate reserves size payload bytes.
	// Returns the payload ref, a slice over the payload, and any error.
	Allocate(size int32) (Ref, []byte, error)

	// Deallocate returns a block to the arena. NilRef is a no-op.
	Deallocate(ref Ref) error
}

// Block describes one entry of the block list.
type Block struct {
	Offset    uint32 // Arena offset of the header
	Size      uint32 // Payload bytes (excludes the header)
	Free      bool
	Requested uint32 // Bytes asked for by Allocate, 0 when free
}

// Ref returns the payload ref of the block.
func (b Block) Ref() Ref {
	return Ref(b.Offset + HeaderSize)
}

// End returns the arena offset one past the block's payload.
func (b Block) End() uint32 {
	return b.Offset + HeaderSize + b.Size
}

// Slack returns the payload bytes allocated beyond the request.
func (b Block) Slack() uint32 {
	if b.Free {
		return 0
	}
	return b.Size - b.Requested
}
