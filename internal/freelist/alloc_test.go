package freelist_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/freelistalloc/freelistalloc/backing"
	"github.com/freelistalloc/freelistalloc/backing/backingmock"
	"github.com/freelistalloc/freelistalloc/internal/freelist"
)

func TestAllocatePropagatesBackingFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBacking := backingmock.NewMockBacking(ctrl)
	mockBacking.EXPECT().Acquire(gomock.Any()).Return(backing.Region{}, backing.ErrOutOfMemory)

	r := freelist.New(mockBacking, nil, 0)

	_, err := r.Allocate(128)
	require.Error(t, err)
}

func TestAllocateBestFitPrefersSmallestAdequateBlock(t *testing.T) {
	r := freelist.New(backing.NewSystemHeap(), nil, 0)

	_, err := r.Resize(1024)
	require.NoError(t, err)

	// Layout after these calls: [500 free][200 used][324 free].
	a, err := r.Allocate(500)
	require.NoError(t, err)
	_, err = r.Allocate(200)
	require.NoError(t, err)
	_, err = r.Free(a)
	require.NoError(t, err)

	// Both free blocks fit 300 bytes; best-fit picks the 324-byte one,
	// which starts 700 bytes into the region.
	b, err := r.Allocate(300)
	require.NoError(t, err)
	require.Equal(t, a+700, b)
}

func TestAllocateRejectsNonPositiveSize(t *testing.T) {
	r := freelist.New(backing.NewSystemHeap(), nil, 0)

	_, err := r.Allocate(0)
	require.Error(t, err)

	_, err = r.Allocate(-1)
	require.Error(t, err)
}
