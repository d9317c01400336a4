package backing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freelistalloc/freelistalloc/backing"
)

func TestSystemHeapAcquireRelease(t *testing.T) {
	heap := backing.NewSystemHeap()

	region, err := heap.Acquire(256)
	require.NoError(t, err)
	require.NotZero(t, region.Addr)
	require.Equal(t, 256, region.Size)

	require.NoError(t, heap.Release(region))
}

func TestSystemHeapAcquireNonPositive(t *testing.T) {
	heap := backing.NewSystemHeap()

	_, err := heap.Acquire(0)
	require.Error(t, err)
}

func TestSystemHeapReleaseUnknownRegion(t *testing.T) {
	heap := backing.NewSystemHeap()

	err := heap.Release(backing.Region{Addr: 0xdeadbeef, Size: 8})
	require.Error(t, err)
}

func TestSystemHeapDistinctRegionsDoNotAlias(t *testing.T) {
	heap := backing.NewSystemHeap()

	a, err := heap.Acquire(128)
	require.NoError(t, err)
	b, err := heap.Acquire(128)
	require.NoError(t, err)

	require.NotEqual(t, a.Addr, b.Addr)

	require.NoError(t, heap.Release(a))
	require.NoError(t, heap.Release(b))
}
