// Package dynalloc implements a dynamic general-purpose memory allocator
// over a caller-supplied backing store: a dense, index-addressed registry
// of block descriptors services best-fit allocation with splitting, and
// Free coalesces adjacent descriptors back together, growing or shrinking
// the pool into its Backing as needed.
package dynalloc

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/freelistalloc/freelistalloc/internal/freelist"
)

// Allocator is a single dynamic memory pool. All methods are safe for
// concurrent use.
type Allocator struct {
	mu           sync.Mutex
	registry     *freelist.Registry
	statsEnabled bool
}

// New constructs an Allocator from cfg, reserving Config.BaseSize bytes
// from Config.Backing up front if it is non-zero.
func New(cfg Config) (*Allocator, error) {
	if cfg.Backing == nil {
		return nil, ErrBackingRequired
	}

	a := &Allocator{
		registry:     freelist.New(cfg.Backing, cfg.Logger, cfg.MaxDescriptors),
		statsEnabled: cfg.EnableStats,
	}

	if cfg.BaseSize > 0 {
		if ok, err := a.registry.Resize(cfg.BaseSize); !ok {
			return nil, errors.Wrap(err, "dynalloc: failed to reserve BaseSize")
		}
	}

	return a, nil
}

// Allocate reserves size bytes and returns their address. It grows the
// pool via the configured Backing when no existing free block can satisfy
// the request.
func (a *Allocator) Allocate(size int) (uintptr, error) {
	if size <= 0 {
		return 0, ErrInvalidSize
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	addr, err := a.registry.Allocate(size)
	if err != nil {
		return 0, errors.Wrap(err, "dynalloc: allocate")
	}
	return addr, nil
}

// Free releases the range previously returned by Allocate at addr,
// coalescing it with any adjacent free neighbours. It reports false if
// addr is not a live allocation.
func (a *Allocator) Free(addr uintptr) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	ok, _ := a.registry.Free(addr)
	return ok
}

// Resize grows or shrinks the pool toward target bytes. Shrinking only
// releases whole, currently-free primary regions back to Backing; if it
// cannot reach target this way, it returns false along with an error
// describing how far it got.
func (a *Allocator) Resize(target int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ok, err := a.registry.Resize(target)
	if err != nil {
		return ok, errors.Wrap(err, "dynalloc: resize")
	}
	return ok, nil
}

// Clear releases every region held from Backing and resets the allocator
// to an empty state with a TotalSize of zero; Config.BaseSize is not
// reserved again.
func (a *Allocator) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return errors.Wrap(a.registry.Clear(), "dynalloc: clear")
}

// TotalSize returns the number of bytes currently reserved from Backing.
func (a *Allocator) TotalSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.registry.TotalSize()
}

// FreeSize returns the number of currently unallocated bytes within
// TotalSize.
func (a *Allocator) FreeSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.registry.FreeSize()
}

// OccupiedSize returns TotalSize minus FreeSize.
func (a *Allocator) OccupiedSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.registry.OccupiedSize()
}

// Stats returns a human-readable snapshot of the allocator's internal
// bookkeeping, suitable for diagnostic logging. It returns the empty
// string unless Config.EnableStats was set at construction.
func (a *Allocator) Stats() string {
	if !a.statsEnabled {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.registry.Stats()
}

// DebugJSON returns a structured, machine-readable snapshot of the
// allocator's internal bookkeeping. It returns ErrStatsDisabled unless
// Config.EnableStats was set at construction.
func (a *Allocator) DebugJSON() ([]byte, error) {
	if !a.statsEnabled {
		return nil, ErrStatsDisabled
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.registry.DebugJSON()
}
