package freelist

import (
	"log/slog"

	"golang.org/x/exp/slices"

	"github.com/freelistalloc/freelistalloc/backing"
)

// Registry owns the dense, index-addressed pool of block descriptors and
// the recycle bin of freed descriptor indices (component R of the module),
// plus the free-list operations that manipulate it (component F):
// Allocate, Free, Resize, Clear.
type Registry struct {
	backing backing.Backing
	logger  *slog.Logger

	blocks  []Descriptor
	freeIDs []uint32

	// regions tracks every range currently held from Backing, independent
	// of how its primary descriptor has since been split. A primary
	// descriptor's own Size drifts as it is carved up by allocation and
	// restored by coalescing, so it cannot be trusted alone to describe
	// what must be handed back to Backing; regions is the source of truth
	// for that.
	regions []backing.Region

	head, tail uint32

	totalSize, freeSize int

	useFreeBin bool
}

// New constructs an empty Registry. maxDescriptors is a capacity hint for
// the underlying slices (see Open Question OQ5 in SPEC_FULL.md) - it is
// never enforced as a hard ceiling.
func New(b backing.Backing, logger *slog.Logger, maxDescriptors int) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		backing: b,
		logger:  logger,
		head:    InvalidIndex,
		tail:    InvalidIndex,
	}

	if maxDescriptors > 0 {
		r.blocks = make([]Descriptor, 0, maxDescriptors)
		r.freeIDs = make([]uint32, 0, maxDescriptors)
	}

	return r
}

// TotalSize returns the sum of every live descriptor's size.
func (r *Registry) TotalSize() int { return r.totalSize }

// FreeSize returns the sum of every live free descriptor's size.
func (r *Registry) FreeSize() int { return r.freeSize }

// OccupiedSize returns TotalSize minus FreeSize.
func (r *Registry) OccupiedSize() int { return r.totalSize - r.freeSize }

// allocateSlot stores desc in a registry slot and returns its index,
// reusing a recycled slot from freeIDs when the bin latch is engaged.
func (r *Registry) allocateSlot(desc Descriptor) uint32 {
	if r.useFreeBin && len(r.freeIDs) > 0 {
		id := r.freeIDs[len(r.freeIDs)-1]
		r.freeIDs = r.freeIDs[:len(r.freeIDs)-1]
		r.blocks[id] = desc

		if len(r.freeIDs) == 0 {
			r.useFreeBin = false
		}
		return id
	}

	r.blocks = append(r.blocks, desc)
	return uint32(len(r.blocks) - 1)
}

// invalidate overwrites the slot at id with a default-constructed
// descriptor and pushes id onto the recycle bin, engaging the bin latch
// once it grows past FreeIDsThreshold.
func (r *Registry) invalidate(id uint32) {
	r.blocks[id] = Descriptor{}
	r.freeIDs = append(r.freeIDs, id)

	if len(r.freeIDs) > FreeIDsThreshold {
		r.useFreeBin = true
	}
}

// at is a convenience accessor primarily used to make traversal code read
// closer to the module's invariant statements.
func (r *Registry) at(id uint32) *Descriptor {
	return &r.blocks[id]
}

// takeRegion removes and returns the tracked region whose Addr matches
// addr. It panics if no such region is tracked, which would indicate a
// bookkeeping bug elsewhere in the registry rather than a condition a
// caller could sensibly recover from.
func (r *Registry) takeRegion(addr uintptr) backing.Region {
	i := slices.IndexFunc(r.regions, func(reg backing.Region) bool { return reg.Addr == addr })
	if i < 0 {
		panic("freelist: release of an address with no tracked region")
	}

	reg := r.regions[i]
	r.regions = append(r.regions[:i], r.regions[i+1:]...)
	return reg
}
