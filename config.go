package dynalloc

import (
	"log/slog"

	"github.com/freelistalloc/freelistalloc/backing"
)

// Config supplies the settings used to construct an Allocator. Backing is
// the only required field.
type Config struct {
	// Backing supplies the memory the allocator grows and shrinks into. It
	// is required.
	Backing backing.Backing

	// BaseSize is the size, in bytes, reserved from Backing when the
	// allocator is constructed. It may be zero, in which case the first
	// Allocate call pays the cost of the initial Backing.Acquire.
	BaseSize int

	// MaxDescriptors is a capacity hint for the allocator's internal
	// descriptor bookkeeping. It is never enforced as a hard ceiling; the
	// allocator grows its bookkeeping past this value if asked to.
	MaxDescriptors int

	// Logger receives structured diagnostic events: small allocations,
	// pool growth and shrinkage, and declined splits. It defaults to
	// slog.Default() when nil.
	Logger *slog.Logger

	// EnableStats turns on Allocator.Stats and Allocator.DebugJSON. It is
	// a construction-time switch rather than a global so that enabling
	// diagnostics in one Allocator never affects another's overhead.
	EnableStats bool
}
