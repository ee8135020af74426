package arena

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestArena creates a heap-backed arena closed at test cleanup.
func newTestArena(t testing.TB, capacity int32) *FirstFit {
	t.Helper()
	a, err := NewFirstFit(&Config{Capacity: capacity})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// mustAlloc allocates size bytes and fails the test on error.
func mustAlloc(t testing.TB, a *FirstFit, size int32) Ref {
	t.Helper()
	ref, buf, err := a.Allocate(size)
	require.NoError(t, err, "Allocate(%d)", size)
	require.NotEqual(t, NilRef, ref)
	require.Len(t, buf, int(size))
	return ref
}

// layout collects the block list.
func layout(a *FirstFit) []Block {
	return slices.Collect(a.Blocks())
}

// freeBlocks returns only the free blocks of the list.
func freeBlocks(a *FirstFit) []Block {
	var out []Block
	for b := range a.Blocks() {
		if b.Free {
			out = append(out, b)
		}
	}
	return out
}

// assertInvariants verifies the list and the byte accounting.
func assertInvariants(t testing.TB, a *FirstFit) {
	t.Helper()

	require.NoError(t, a.Verify())

	s := a.Stats()
	require.Equal(t, s.Capacity, s.FreeBytes+s.UsedBytes+s.HeaderBytes,
		"free(%d) + used(%d) + headers(%d) must equal capacity", s.FreeBytes, s.UsedBytes, s.HeaderBytes)

	blocks := layout(a)
	require.NotEmpty(t, blocks)
	require.Equal(t, uint32(0), blocks[0].Offset, "list must start at offset 0")
	for i := 1; i < len(blocks); i++ {
		require.Equal(t, blocks[i-1].End(), blocks[i].Offset, "gap or overlap before block %d", i)
		require.False(t, blocks[i-1].Free && blocks[i].Free, "adjacent free blocks at %d", blocks[i].Offset)
	}
	require.Equal(t, uint32(a.Capacity()), blocks[len(blocks)-1].End(), "list must end at capacity")
}
