package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeap(t *testing.T) {
	r, err := New(4096, KindHeap)
	require.NoError(t, err)
	assert.Equal(t, KindHeap, r.Kind())
	require.Len(t, r.Bytes(), 4096)
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, b)
		}
	}
	require.NoError(t, r.Close())
	assert.Nil(t, r.Bytes())
}

func TestNewMmapWritable(t *testing.T) {
	r, err := New(102400, KindMmap)
	require.NoError(t, err)
	defer r.Close()

	data := r.Bytes()
	require.Len(t, data, 102400)
	data[0] = 0xAB
	data[len(data)-1] = 0xCD
	assert.Equal(t, byte(0xAB), r.Bytes()[0])
	assert.Equal(t, byte(0xCD), r.Bytes()[102399])
	assert.Equal(t, byte(0), data[4096], "anonymous pages must be zero-filled")
}

func TestCloseTwice(t *testing.T) {
	for _, kind := range []Kind{KindHeap, KindMmap} {
		r, err := New(64, kind)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.NoError(t, r.Close(), "second Close on %s", kind)
	}
}

func TestNewInvalidSize(t *testing.T) {
	_, err := New(0, KindHeap)
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(-1, KindMmap)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "heap", KindHeap.String())
	assert.Equal(t, "mmap", KindMmap.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
