package format

import "errors"

var (
	// ErrSignatureMismatch indicates the bytes at an offset are not a block header.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
)
