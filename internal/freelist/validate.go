package freelist

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Validate walks the registry's internal state and checks list integrity
// from head to tail (I1), the TotalSize/FreeSize sums (I2), address
// contiguity of descriptors marked adjacent (I3), the recycled slots in
// freeIDs (I5), and that no region is tracked twice. It does not check
// which region a descriptor belongs to, so I4 and I6 are not verified.
// Callers may invoke it directly in any build; debugValidate also calls
// it automatically under the dynalloc_debug build tag and is otherwise a
// no-op (see validate_debug.go, validate_prod.go).
func (r *Registry) Validate() error {
	seen := make(map[uint32]bool, len(r.blocks))

	var (
		sumTotal int
		sumFree  int
		count    int
		prev     uint32 = InvalidIndex
	)

	for cur := r.head; cur != InvalidIndex; cur = r.blocks[cur].Next {
		if seen[cur] {
			return errors.Errorf("validate: cycle detected revisiting descriptor %d", cur)
		}
		if int(cur) >= len(r.blocks) {
			return errors.Errorf("validate: descriptor index %d out of range (len %d)", cur, len(r.blocks))
		}
		seen[cur] = true

		d := r.blocks[cur]
		if d.isDefault() {
			return errors.Errorf("validate: reachable descriptor %d is default-valued", cur)
		}

		sumTotal += d.Size
		if d.IsFree {
			sumFree += d.Size
		}

		if d.IsAdjacentToNext {
			if d.Next == InvalidIndex {
				return errors.Errorf("validate: descriptor %d claims adjacency but has no successor", cur)
			}
			next := r.blocks[d.Next]
			if next.Memory != d.Memory+uintptr(d.Size) {
				return errors.Errorf("validate: descriptor %d marked adjacent to %d but addresses are not contiguous", cur, d.Next)
			}
		}

		count++
		prev = cur
	}

	if count > 0 && prev != r.tail {
		return errors.Errorf("validate: list traversal ended at %d, expected tail %d", prev, r.tail)
	}
	if count == 0 && r.head != InvalidIndex {
		return errors.New("validate: head set but traversal visited nothing")
	}
	if count == 0 && r.tail != InvalidIndex {
		return errors.New("validate: tail set but traversal visited nothing")
	}

	if sumTotal != r.totalSize {
		return errors.Errorf("validate: sum of descriptor sizes %d does not match TotalSize %d", sumTotal, r.totalSize)
	}
	if sumFree != r.freeSize {
		return errors.Errorf("validate: sum of free descriptor sizes %d does not match FreeSize %d", sumFree, r.freeSize)
	}
	if r.freeSize > r.totalSize {
		return errors.Errorf("validate: FreeSize %d exceeds TotalSize %d", r.freeSize, r.totalSize)
	}

	for i, id := range r.freeIDs {
		if seen[id] {
			return errors.Errorf("validate: recycled slot %d is also reachable from head", id)
		}
		if !r.blocks[id].isDefault() {
			return errors.Errorf("validate: recycled slot %d is not default-valued", id)
		}
		if slices.Contains(r.freeIDs[:i], id) {
			return errors.Errorf("validate: recycled slot %d appears more than once in freeIDs", id)
		}
	}

	regionSeen := make(map[uintptr]bool, len(r.regions))
	for _, reg := range r.regions {
		if regionSeen[reg.Addr] {
			return errors.Errorf("validate: region %x tracked more than once", reg.Addr)
		}
		regionSeen[reg.Addr] = true
	}

	return nil
}
