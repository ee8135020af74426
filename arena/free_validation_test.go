package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeallocateNilRef(t *testing.T) {
	a := newTestArena(t, 1024)

	require.NoError(t, a.Deallocate(NilRef))
	assert.Equal(t, 0, a.Stats().FreeCalls)
	assert.False(t, a.ready)
}

func TestDeallocateBeforeAllocate(t *testing.T) {
	a := newTestArena(t, 1024)

	require.ErrorIs(t, a.Deallocate(Ref(HeaderSize)), ErrInvalidFree)
	assert.False(t, a.ready, "a rejected free must not initialize the list")
}

func TestDeallocateForeignRefs(t *testing.T) {
	a := newTestArena(t, 1024)
	ref := mustAlloc(t, a, 100)
	mustAlloc(t, a, 100)
	before := layout(a)

	cases := []struct {
		name string
		ref  Ref
	}{
		{"below first payload", Ref(HeaderSize - 1)},
		{"past capacity", Ref(1025)},
		{"huge", Ref(^uint32(0))},
		{"inside payload", ref + 1},
		{"inside trailing free block", Ref(300)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := a.Deallocate(tc.ref)
			require.ErrorIs(t, err, ErrInvalidFree)
			assert.NotErrorIs(t, err, ErrDoubleFree)
			assert.Equal(t, before, layout(a), "rejected free must not modify the arena")
		})
	}
	assert.Equal(t, len(cases), a.Stats().FailedFrees)
}

func TestDoubleFree(t *testing.T) {
	a := newTestArena(t, 1024)
	ref := mustAlloc(t, a, 100)
	mustAlloc(t, a, 100)

	require.NoError(t, a.Deallocate(ref))
	before := layout(a)

	err := a.Deallocate(ref)
	require.ErrorIs(t, err, ErrDoubleFree)
	assert.Equal(t, before, layout(a))
}

// TestDoubleFreeAfterMerge frees a block that has since been absorbed into
// its left neighbour. Its header is unlinked but still in the buffer.
func TestDoubleFreeAfterMerge(t *testing.T) {
	a := newTestArena(t, 1024)
	ra := mustAlloc(t, a, 100)
	rb := mustAlloc(t, a, 100)
	mustAlloc(t, a, 100)

	require.NoError(t, a.Deallocate(rb))
	require.NoError(t, a.Deallocate(ra)) // absorbs b
	require.Equal(t, Block{Offset: 0, Size: 216, Free: true}, layout(a)[0])

	err := a.Deallocate(rb)
	require.ErrorIs(t, err, ErrDoubleFree)
	assertInvariants(t, a)
}

func TestFreedRefReusedByFirstFit(t *testing.T) {
	a := newTestArena(t, 1024)
	ref := mustAlloc(t, a, 64)
	mustAlloc(t, a, 64)

	require.NoError(t, a.Deallocate(ref))
	again := mustAlloc(t, a, 64)
	assert.Equal(t, ref, again, "the freed block is first in list order")
	require.NoError(t, a.Deallocate(again))
}
