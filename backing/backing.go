// Package backing defines the capability the allocator consumes to obtain
// and release raw, contiguous byte regions, along with a default
// implementation backed by the Go heap.
package backing

import (
	"unsafe"

	"github.com/pkg/errors"
)

// ErrOutOfMemory is wrapped and returned by a Backing implementation's
// Acquire method when it cannot satisfy a request.
var ErrOutOfMemory = errors.New("backing allocator: out of memory")

// Region describes one contiguous byte range obtained from a single call
// to Backing.Acquire. Addr is an opaque, non-zero, non-null-guaranteed
// starting address; Size is its length in bytes. Regions obtained from
// distinct Acquire calls are assumed non-contiguous in address space -
// nothing in this module coalesces across Region boundaries.
type Region struct {
	Addr uintptr
	Size int
}

// Backing is the capability set the allocator consumes to grow and shrink
// its pool. Implementations need not be safe for concurrent use; the
// Allocator that consumes one calls it only while holding its own lock.
type Backing interface {
	// Acquire returns a fresh, uninitialized region of at least n bytes.
	// It never returns a zero Region on success; failure is reported as
	// an error wrapping ErrOutOfMemory.
	Acquire(n int) (Region, error)
	// Release relinquishes a region previously returned by Acquire. Passing
	// a Region not currently held is a precondition violation.
	Release(r Region) error
}

// systemHeap is the default Backing implementation: it carves regions out
// of ordinary Go heap allocations. The byte slices backing live regions are
// held here so the garbage collector cannot reclaim them out from under
// the allocator while their address is still in use.
type systemHeap struct {
	live map[uintptr][]byte
}

// NewSystemHeap returns a Backing implementation that satisfies Acquire by
// allocating ordinary Go byte slices and exposing their first-byte address.
// It is not substituted automatically: dynalloc.New rejects a Config whose
// Backing is nil.
func NewSystemHeap() Backing {
	return &systemHeap{live: make(map[uintptr][]byte)}
}

func (h *systemHeap) Acquire(n int) (Region, error) {
	if n <= 0 {
		return Region{}, errors.Wrapf(ErrOutOfMemory, "requested non-positive size %d", n)
	}

	buf := make([]byte, n)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	h.live[addr] = buf

	return Region{Addr: addr, Size: n}, nil
}

func (h *systemHeap) Release(r Region) error {
	if _, ok := h.live[r.Addr]; !ok {
		return errors.Errorf("system heap: release of unknown region at 0x%x", r.Addr)
	}

	delete(h.live, r.Addr)
	return nil
}
