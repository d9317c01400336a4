package freelist

// Clear releases every region currently held from Backing and resets the
// registry to its newly-constructed, empty state, regardless of whether
// those regions are presently whole, split, allocated, or free.
//
// Clear deliberately releases from the regions ledger rather than by
// walking primary descriptors: a primary descriptor's Size reflects only
// whatever remains of it after splitting, not the full range originally
// acquired, so only the ledger can be trusted to hand back exactly what
// was taken.
func (r *Registry) Clear() error {
	for _, reg := range r.regions {
		if err := r.backing.Release(reg); err != nil {
			return err
		}
	}

	r.blocks = r.blocks[:0]
	r.freeIDs = r.freeIDs[:0]
	r.regions = r.regions[:0]
	r.head = InvalidIndex
	r.tail = InvalidIndex
	r.totalSize = 0
	r.freeSize = 0
	r.useFreeBin = false

	return nil
}
