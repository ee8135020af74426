package arena

import "errors"

var (
	// ErrInvalidSize indicates a request of zero, negative, or more than
	// capacity bytes.
	ErrInvalidSize = errors.New("arena: invalid allocation size")

	// ErrOutOfMemory indicates that no free block large enough was found.
	ErrOutOfMemory = errors.New("arena: no free block large enough")

	// ErrInvalidFree indicates a ref that is not the payload of a block on the list.
	ErrInvalidFree = errors.New("arena: ref not allocated by this arena")

	// ErrDoubleFree indicates a ref whose block is already free.
	ErrDoubleFree = errors.New("arena: block already free")

	// ErrInvalidCapacity indicates a configured capacity that cannot hold a header.
	ErrInvalidCapacity = errors.New("arena: invalid capacity")

	// ErrCorrupt indicates the block list violates its layout invariants.
	ErrCorrupt = errors.New("arena: corrupt block list")

	// ErrClosed indicates use of an allocator after Close.
	ErrClosed = errors.New("arena: closed")
)
