package freelist

// Free locates the descriptor whose Memory equals addr, marks it free, and
// coalesces it with an adjacent free neighbour on either side - forward
// first, then backward, so a free that reunites three consecutive
// adjacent-and-free descriptors collapses to one in a single call. It
// returns false, leaving all state unchanged, if addr is not held by any
// live descriptor or is already free (freeing an already-free address is
// explicitly undefined by the module's contract; this implementation
// chooses to reject it rather than risk double-counting freeSize).
func (r *Registry) Free(addr uintptr) (bool, error) {
	r.debugValidate()

	prev := InvalidIndex
	cur := r.head
	for cur != InvalidIndex && r.blocks[cur].Memory != addr {
		prev = cur
		cur = r.blocks[cur].Next
	}

	if cur == InvalidIndex {
		return false, ErrUnknownAddress
	}

	c := r.at(cur)
	if c.IsFree {
		return false, nil
	}

	c.IsFree = true
	r.freeSize += c.Size

	if c.Next != InvalidIndex && c.IsAdjacentToNext && r.blocks[c.Next].IsFree {
		r.mergeForward(cur)
	}

	if prev != InvalidIndex && r.blocks[prev].IsAdjacentToNext && r.blocks[prev].IsFree {
		r.mergeBackward(prev, cur)
		cur = prev
	}

	r.debugValidate()
	return true, nil
}

// mergeForward absorbs the descriptor that follows cur into cur: cur grows
// by the successor's size, inherits its adjacency flag and Next pointer,
// and the successor's slot is invalidated. The tail pointer is updated if
// the absorbed descriptor was the tail.
func (r *Registry) mergeForward(cur uint32) {
	c := r.at(cur)
	nextID := c.Next
	next := r.blocks[nextID]

	c.Size += next.Size
	c.IsAdjacentToNext = next.IsAdjacentToNext
	c.Next = next.Next

	if nextID == r.tail {
		r.tail = cur
	}

	r.invalidate(nextID)
}

// mergeBackward absorbs cur into its predecessor prev, symmetrically to
// mergeForward.
func (r *Registry) mergeBackward(prev, cur uint32) {
	c := r.blocks[cur]
	p := r.at(prev)

	p.Size += c.Size
	p.IsAdjacentToNext = c.IsAdjacentToNext
	p.Next = c.Next

	if cur == r.tail {
		r.tail = prev
	}

	r.invalidate(cur)
}
