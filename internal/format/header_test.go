package format

import (
	"errors"
	"testing"
)

func TestPutReadHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	want := Header{Size: 48, Free: false, Next: NoNext, Requested: 40}
	PutHeader(buf, 0, want)

	got, err := ReadHeader(buf, 0)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if got != want {
		t.Fatalf("header mismatch: got %+v want %+v", got, want)
	}
	if !got.Last() {
		t.Fatalf("expected last header")
	}
	if got.End(0) != 64 {
		t.Fatalf("End = %d, want 64", got.End(0))
	}
}

func TestHeaderLayout(t *testing.T) {
	buf := make([]byte, 32)
	PutHeader(buf, 3, Header{Size: 0x01020304, Free: true, Next: 0x0A0B0C0D})

	if buf[3] != 0x04 || buf[6] != 0x01 {
		t.Fatalf("size not little-endian: % x", buf[3:7])
	}
	if buf[7] != 'b' || buf[8] != 'k' {
		t.Fatalf("signature missing: % x", buf[7:9])
	}
	if ReadU16(buf, 3+HeaderFlagsOffset) != FlagFree {
		t.Fatalf("free flag not set")
	}
	if ReadU32(buf, 3+HeaderNextOffset) != 0x0A0B0C0D {
		t.Fatalf("next mismatch")
	}
	if ReadU32(buf, 3+HeaderRequestedOffset) != 0 {
		t.Fatalf("requested must be zero for a free block")
	}
}

func TestReadHeaderTruncated(t *testing.T) {
	buf := make([]byte, HeaderSize+4)
	PutHeader(buf, 0, Header{Size: 4, Next: NoNext})

	if _, err := ReadHeader(buf, 8); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := ReadHeader(buf, NoNext); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for NoNext offset, got %v", err)
	}
}

func TestReadHeaderSignature(t *testing.T) {
	buf := make([]byte, HeaderSize)
	if _, err := ReadHeader(buf, 0); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
	if IsHeader(buf, 0) {
		t.Fatalf("zeroed bytes must not decode as a header")
	}
	PutHeader(buf, 0, Header{Next: NoNext})
	if !IsHeader(buf, 0) {
		t.Fatalf("expected header after PutHeader")
	}
}
