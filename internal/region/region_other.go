//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package region

// mapAnon reports no mapping so New falls back to a heap slice.
func mapAnon(int) ([]byte, error) {
	return nil, nil
}

func unmapAnon([]byte) error {
	return nil
}
