package format

import "fmt"

// Header is the decoded form of a block header.
type Header struct {
	Size      uint32 // Payload bytes following the header
	Free      bool   // True when the payload is unallocated
	Next      uint32 // Offset of the next header, NoNext for the last block
	Requested uint32 // Caller-requested bytes for a live block, 0 when free
}

// Last reports whether h terminates the block list.
func (h Header) Last() bool {
	return h.Next == NoNext
}

// End returns the offset one past the payload of a header located at off.
func (h Header) End(off uint32) uint32 {
	return off + HeaderSize + h.Size
}

// ReadHeader decodes the header at off. It fails when the header would run
// past the buffer or the signature is missing; it does not check that the
// payload itself fits, callers validating a whole arena do that.
func ReadHeader(b []byte, off uint32) (Header, error) {
	if uint64(off)+HeaderSize > uint64(len(b)) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	o := int(off)
	if b[o+HeaderSignatureOffset] != Signature[0] || b[o+HeaderSignatureOffset+1] != Signature[1] {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrSignatureMismatch)
	}
	return Header{
		Size:      ReadU32(b, o+HeaderSizeOffset),
		Free:      ReadU16(b, o+HeaderFlagsOffset)&FlagFree != 0,
		Next:      ReadU32(b, o+HeaderNextOffset),
		Requested: ReadU32(b, o+HeaderRequestedOffset),
	}, nil
}

// PutHeader encodes h at off. The caller guarantees off+HeaderSize <= len(b).
func PutHeader(b []byte, off uint32, h Header) {
	o := int(off)
	PutU32(b, o+HeaderSizeOffset, h.Size)
	copy(b[o+HeaderSignatureOffset:], Signature[:])
	var flags uint16
	if h.Free {
		flags |= FlagFree
	}
	PutU16(b, o+HeaderFlagsOffset, flags)
	PutU32(b, o+HeaderNextOffset, h.Next)
	PutU32(b, o+HeaderRequestedOffset, h.Requested)
}

// IsHeader reports whether a signature is present at off.
func IsHeader(b []byte, off uint32) bool {
	_, err := ReadHeader(b, off)
	return err == nil
}
