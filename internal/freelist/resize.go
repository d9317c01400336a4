package freelist

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Resize adjusts TotalSize toward target, per the module's three cases:
// empty-allocator (first acquire), growth (acquire the delta and append a
// new primary descriptor), and shrink (release primary descriptors back
// to Backing until the target is reached or no more are eligible).
//
// It returns true on success. For the shrink case, false indicates some
// shrinkage may have occurred and was kept, but the target was not fully
// reached (ErrShrinkUnsatisfied) - this module implements the corrected
// sense of that boolean, not the original source's inverted one; see
// Open Question OQ1 in SPEC_FULL.md.
func (r *Registry) Resize(target int) (bool, error) {
	if target < 0 {
		return false, ErrInvalidSize
	}

	if target <= MinAllocSize {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug,
			"resize requested with a small target size",
			slog.Int("target", target))
	}

	switch {
	case len(r.blocks) == 0 && r.totalSize == 0:
		return r.resizeEmpty(target)
	case target > r.totalSize:
		return r.resizeGrow(target)
	case target < r.totalSize && r.freeSize >= target:
		return r.resizeShrink(target)
	default:
		if target == r.totalSize {
			return true, nil
		}
		return false, errors.Wrapf(ErrShrinkUnsatisfied,
			"target %d requires shrinking below current free size %d", target, r.freeSize)
	}
}

func (r *Registry) resizeEmpty(target int) (bool, error) {
	region, err := r.backing.Acquire(target)
	if err != nil {
		return false, errors.Wrap(err, "resize: initial acquire failed")
	}

	id := r.allocateSlot(Descriptor{
		Size:      target,
		Memory:    region.Addr,
		Next:      InvalidIndex,
		IsFree:    true,
		IsPrimary: true,
	})

	r.regions = append(r.regions, region)

	r.head = id
	r.tail = id
	r.totalSize = target
	r.freeSize = target

	return true, nil
}

func (r *Registry) resizeGrow(target int) (bool, error) {
	growAmount := target - r.totalSize

	region, err := r.backing.Acquire(growAmount)
	if err != nil {
		return false, errors.Wrap(err, "resize: growth acquire failed")
	}

	id := r.allocateSlot(Descriptor{
		Size:      growAmount,
		Memory:    region.Addr,
		Next:      InvalidIndex,
		IsFree:    true,
		IsPrimary: true,
	})

	r.regions = append(r.regions, region)

	if r.tail == InvalidIndex {
		r.head = id
	} else {
		// Distinct primary regions are assumed non-contiguous: the
		// previous tail never becomes adjacent to the new one.
		r.at(r.tail).IsAdjacentToNext = false
		r.at(r.tail).Next = id
	}
	r.tail = id

	r.totalSize = target
	r.freeSize += growAmount

	r.logger.LogAttrs(context.Background(), slog.LevelDebug,
		"pool grown", slog.Int("by", growAmount), slog.Int("total", r.totalSize))

	return true, nil
}

func (r *Registry) resizeShrink(target int) (bool, error) {
	prev := InvalidIndex
	cur := r.head

	for cur != InvalidIndex {
		d := r.blocks[cur]
		next := d.Next

		if d.IsPrimary && d.IsFree && !d.IsAdjacentToNext {
			if err := r.backing.Release(r.takeRegion(d.Memory)); err != nil {
				return false, errors.Wrap(err, "resize: release failed")
			}

			if prev == InvalidIndex {
				r.head = next
			} else {
				r.at(prev).Next = next
			}
			if cur == r.tail {
				r.tail = prev
			}

			r.invalidate(cur)
			r.totalSize -= d.Size
			r.freeSize -= d.Size

			if r.totalSize <= target || r.freeSize <= target {
				break
			}

			cur = next
			continue
		}

		prev = cur
		cur = next
	}

	if r.totalSize > target {
		return false, errors.Wrapf(ErrShrinkUnsatisfied,
			"target %d: total %d, free %d after traversal", target, r.totalSize, r.freeSize)
	}

	r.logger.LogAttrs(context.Background(), slog.LevelDebug,
		"pool shrunk", slog.Int("target", target), slog.Int("total", r.totalSize))

	return true, nil
}
