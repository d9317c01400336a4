package dynalloc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/freelistalloc/freelistalloc"
	"github.com/freelistalloc/freelistalloc/backing"
)

func TestAllocatorRequiresBacking(t *testing.T) {
	_, err := dynalloc.New(dynalloc.Config{})
	require.Error(t, err)
}

func TestAllocatorAllocateWriteFree(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{
		Backing:  backing.NewSystemHeap(),
		BaseSize: 4096,
	})
	require.NoError(t, err)
	require.Equal(t, 4096, a.TotalSize())
	require.Equal(t, 4096, a.FreeSize())

	addr, err := a.Allocate(64)
	require.NoError(t, err)
	require.NotZero(t, addr)

	// The address is backed by real, writable memory.
	ptr := (*byte)(unsafe.Pointer(addr))
	*ptr = 0x42
	require.Equal(t, byte(0x42), *ptr)

	require.True(t, a.Free(addr))
	require.Equal(t, 4096, a.FreeSize())
}

func TestAllocatorGrowsOnDemand(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{Backing: backing.NewSystemHeap()})
	require.NoError(t, err)

	addr, err := a.Allocate(1 << 20)
	require.NoError(t, err)
	require.NotZero(t, addr)
	require.Equal(t, 1<<20, a.TotalSize())
}

func TestAllocatorResizeShrink(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{Backing: backing.NewSystemHeap()})
	require.NoError(t, err)

	for _, target := range []int{256, 512, 768, 1024} {
		ok, err := a.Resize(target)
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := a.Resize(256)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 256, a.TotalSize())
}

func TestAllocatorClear(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{
		Backing:  backing.NewSystemHeap(),
		BaseSize: 1024,
	})
	require.NoError(t, err)

	_, err = a.Allocate(128)
	require.NoError(t, err)

	require.NoError(t, a.Clear())
	require.Equal(t, 0, a.TotalSize())

	addr, err := a.Allocate(64)
	require.NoError(t, err)
	require.NotZero(t, addr)
}

func TestAllocatorStatsAndDebugJSON(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{
		Backing:     backing.NewSystemHeap(),
		BaseSize:    512,
		EnableStats: true,
	})
	require.NoError(t, err)

	_, err = a.Allocate(64)
	require.NoError(t, err)

	require.NotEmpty(t, a.Stats())

	js, err := a.DebugJSON()
	require.NoError(t, err)
	require.NotEmpty(t, js)
}

func TestAllocatorStatsDisabledByDefault(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{Backing: backing.NewSystemHeap()})
	require.NoError(t, err)

	require.Empty(t, a.Stats())

	_, err = a.DebugJSON()
	require.ErrorIs(t, err, dynalloc.ErrStatsDisabled)
}

func TestAllocatorFreeUnknownAddressReturnsFalse(t *testing.T) {
	a, err := dynalloc.New(dynalloc.Config{Backing: backing.NewSystemHeap()})
	require.NoError(t, err)

	require.False(t, a.Free(0xdeadbeef))
}
