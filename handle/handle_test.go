package handle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/kernel/handle"
)

func TestPool_AllocIsValidFree(t *testing.T) {
	p := handle.NewPool()

	h1 := p.Alloc()
	require.True(t, p.IsValid(h1))
	require.Equal(t, 0, h1.Index())
	require.Equal(t, 1, p.Len())
	require.Equal(t, 1, p.Cap())

	h2 := p.Alloc()
	require.NotEqual(t, h1, h2)
	require.Equal(t, 1, h2.Index())
	require.Equal(t, 2, p.Len())

	require.NoError(t, p.Free(h1))
	require.False(t, p.IsValid(h1), "freed handle must go stale")
	require.True(t, p.IsValid(h2), "freeing h1 must not affect h2")
	require.Equal(t, 1, p.Len())
	require.Equal(t, 2, p.Cap(), "slot count never shrinks")
}

func TestPool_FreeStaleReturnsError(t *testing.T) {
	p := handle.NewPool()
	h := p.Alloc()
	require.NoError(t, p.Free(h))
	require.ErrorIs(t, p.Free(h), handle.ErrStale)
}

func TestPool_ZeroHandleIsAlwaysInvalid(t *testing.T) {
	p := handle.NewPool()
	var zero handle.Handle
	require.True(t, zero.IsZero())
	require.False(t, p.IsValid(zero))
}

func TestPool_AllocReusesFreedSlotWithNewGeneration(t *testing.T) {
	p := handle.NewPool()
	h1 := p.Alloc()
	require.NoError(t, p.Free(h1))

	h2 := p.Alloc()
	require.Equal(t, h1.Index(), h2.Index(), "freed slot index is reused")
	require.NotEqual(t, h1.Generation(), h2.Generation(), "generation must advance")
	require.False(t, p.IsValid(h1))
	require.True(t, p.IsValid(h2))
}

func TestPool_EachVisitsLiveHandlesInIndexOrder(t *testing.T) {
	p := handle.NewPool()
	a := p.Alloc()
	b := p.Alloc()
	c := p.Alloc()
	require.NoError(t, p.Free(b))

	var seen []handle.Handle
	p.Each(func(h handle.Handle) { seen = append(seen, h) })
	require.Equal(t, []handle.Handle{a, c}, seen)
}

func TestPool_NoIteratorInvalidationAcrossDeletes(t *testing.T) {
	p := handle.NewPool()
	handles := make([]handle.Handle, 0, 8)
	for i := 0; i < 8; i++ {
		handles = append(handles, p.Alloc())
	}
	// Free every other handle; the survivors must remain valid and stable.
	for i := 0; i < len(handles); i += 2 {
		require.NoError(t, p.Free(handles[i]))
	}
	for i, h := range handles {
		if i%2 == 0 {
			require.False(t, p.IsValid(h))
		} else {
			require.True(t, p.IsValid(h))
		}
	}
}

func TestPool_AllocPicksLowestFreeIndex(t *testing.T) {
	p := handle.NewPool()
	var hs []handle.Handle
	for i := 0; i < 4; i++ {
		hs = append(hs, p.Alloc())
	}
	require.NoError(t, p.Free(hs[2]))
	require.NoError(t, p.Free(hs[0]))
	require.NoError(t, p.Free(hs[3]))

	require.Equal(t, 0, p.Alloc().Index())
	require.Equal(t, 2, p.Alloc().Index())
	require.Equal(t, 3, p.Alloc().Index())
}
