// Package format houses the low-level layout of block headers embedded in
// an allocator arena. It knows nothing about first-fit search or coalescing;
// it only encodes and decodes the fixed-size record that starts every block.
package format

// Signature is the two-byte tag stored in every block header.
// Layout:
//
//	0x04  'b' 'k'
var Signature = [SignatureSize]byte{'b', 'k'}

const (
	// HeaderSize is the number of bytes used by the header preceding every
	// block payload (free or in-use). It matches the footprint of a
	// {int size; int free; Block *next} record on 64-bit targets.
	HeaderSize = 16

	// SignatureSize is the length of the header signature.
	SignatureSize = 2

	// DefaultCapacity is the arena size used when none is configured (100 KiB).
	DefaultCapacity = 102400

	// NoNext marks the last header in the block list.
	NoNext = 0xFFFFFFFF
)

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Payload size in bytes (excludes the header itself).
//	0x04    2     Signature "bk".
//	0x06    2     Flags. Bit 0 set => free.
//	0x08    4     Arena offset of the next header, NoNext for the last block.
//	0x0C    4     Requested size of the live allocation, 0 when free.
const (
	HeaderSizeOffset      = 0x00
	HeaderSignatureOffset = 0x04
	HeaderFlagsOffset     = 0x06
	HeaderNextOffset      = 0x08
	HeaderRequestedOffset = 0x0C
)

const (
	// FlagFree marks a block whose payload is unallocated.
	FlagFree uint16 = 1 << 0
)
