package freelist

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Allocate reserves size bytes from the pool and returns the address of
// the reserved range, growing the pool via Resize first if size exceeds
// the total free bytes, and again if best-fit selection still finds no
// single free block large enough. Selection is best-fit: the smallest
// free block with Size >= size, ties broken by first occurrence.
func (r *Registry) Allocate(size int) (uintptr, error) {
	if size <= 0 {
		return 0, ErrInvalidSize
	}

	r.debugValidate()

	if size <= MinAllocSize {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug,
			"allocation of a small amount of memory requested",
			slog.Int("size", size))
	}

	if size > r.freeSize {
		if ok, err := r.Resize(r.totalSize + size); !ok {
			return 0, errors.Wrap(err, "allocate: could not grow pool to satisfy request")
		}
	}

	bestID := r.findBestFit(size)

	if bestID == InvalidIndex {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug,
			"no existing block fit the request, pool must grow",
			slog.Int("size", size))

		ok, err := r.Resize(r.totalSize + size)
		if !ok {
			return 0, errors.Wrap(err, "allocate: could not grow pool for a fresh block")
		}
		bestID = r.tail
	}

	addr := r.commitAllocation(bestID, size)

	r.debugValidate()
	return addr, nil
}

// findBestFit walks the logical list from head, returning the index of
// the smallest free block whose size is at least size, or InvalidIndex if
// none qualifies. The traversal never stops early: every live descriptor
// is visited exactly once (invariant I1).
func (r *Registry) findBestFit(size int) uint32 {
	best := InvalidIndex
	for cur := r.head; cur != InvalidIndex; cur = r.blocks[cur].Next {
		d := r.blocks[cur]
		if !d.IsFree || d.Size < size {
			continue
		}
		if best == InvalidIndex || d.Size < r.blocks[best].Size {
			best = cur
		}
	}
	return best
}

// commitAllocation marks the block at id taken, splitting off a remainder
// descriptor when the leftover after size bytes is large enough to be
// worth keeping as its own free block (>= MinAllocSize). It returns the
// address handed to the caller.
func (r *Registry) commitAllocation(id uint32, size int) uintptr {
	d := r.blocks[id]

	if d.Size > size && d.Size-size >= MinAllocSize {
		remainder := Descriptor{
			Size:             d.Size - size,
			Memory:           d.Memory + uintptr(size),
			Next:             d.Next,
			IsAdjacentToNext: d.IsAdjacentToNext,
			IsFree:           true,
			IsPrimary:        false,
		}
		remID := r.allocateSlot(remainder)

		best := r.at(id)
		best.Size = size
		best.Next = remID
		best.IsAdjacentToNext = true
		best.IsFree = false

		if r.tail == id {
			r.tail = remID
		}

		r.freeSize -= size
		return d.Memory
	}

	// No-split case: the caller receives whatever slack d had over size.
	// freeSize is decremented by the full block size (Open Question OQ2,
	// decided in favor of keeping invariant I2 exact).
	if d.Size > size {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug,
			"split declined, remainder below MinAllocSize",
			slog.Int("size", size), slog.Int("blockSize", d.Size))
	}

	best := r.at(id)
	best.IsFree = false

	r.freeSize -= d.Size
	return d.Memory
}
