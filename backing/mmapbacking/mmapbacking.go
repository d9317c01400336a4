// Package mmapbacking provides a backing.Backing implementation that
// carves primary regions out of memory-mapped, unlinked temporary files
// instead of the Go heap, grounded on the way github.com/ipfs/fsbs maps
// its data file
// with github.com/edsrzf/mmap-go.
package mmapbacking

import (
	"os"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/freelistalloc/freelistalloc/backing"
)

// Heap is a backing.Backing implementation whose regions are mmap
// mappings of unlinked temporary files. Each Acquire call creates a
// temporary file sized to the request, maps it RDWR, then unlinks it;
// each Release unmaps and closes it. This trades per-call syscall overhead for pages
// that the OS - not the Go runtime - owns, useful when the allocator's
// pool needs to outlive or bypass the Go heap (e.g. very large pools that
// would otherwise pressure the garbage collector).
type Heap struct {
	dir   string
	files map[uintptr]*mappedFile
}

type mappedFile struct {
	f  *os.File
	mm mmap.MMap
}

// NewHeap returns a mmap-backed Backing. dir selects where the backing
// temp files are created; an empty string uses os.TempDir.
func NewHeap(dir string) *Heap {
	return &Heap{
		dir:   dir,
		files: make(map[uintptr]*mappedFile),
	}
}

func (h *Heap) Acquire(n int) (backing.Region, error) {
	if n <= 0 {
		return backing.Region{}, errors.Wrapf(backing.ErrOutOfMemory, "requested non-positive size %d", n)
	}

	f, err := os.CreateTemp(h.dir, "freelistalloc-*.region")
	if err != nil {
		return backing.Region{}, errors.Wrap(backing.ErrOutOfMemory, err.Error())
	}

	// The directory entry is unlinked as soon as the mapping exists; the
	// mapping keeps the underlying inode alive for as long as the region is
	// in use.
	name := f.Name()
	if err := f.Truncate(int64(n)); err != nil {
		f.Close()
		os.Remove(name)
		return backing.Region{}, errors.Wrap(backing.ErrOutOfMemory, err.Error())
	}

	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		os.Remove(name)
		return backing.Region{}, errors.Wrap(backing.ErrOutOfMemory, err.Error())
	}
	os.Remove(name)

	addr := uintptr(unsafe.Pointer(&mm[0]))
	h.files[addr] = &mappedFile{f: f, mm: mm}

	return backing.Region{Addr: addr, Size: n}, nil
}

func (h *Heap) Release(r backing.Region) error {
	mf, ok := h.files[r.Addr]
	if !ok {
		return errors.Errorf("mmap backing: release of unknown region at 0x%x", r.Addr)
	}

	delete(h.files, r.Addr)

	if err := mf.mm.Unmap(); err != nil {
		return err
	}
	return mf.f.Close()
}
