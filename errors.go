package dynalloc

import "github.com/cockroachdb/errors"

// ErrInvalidSize is returned when Allocate is asked for a non-positive
// size.
var ErrInvalidSize = errors.New("dynalloc: invalid size")

// ErrBackingRequired is returned by New when no Backing implementation is
// supplied in Config.
var ErrBackingRequired = errors.New("dynalloc: Config.Backing must not be nil")

// ErrStatsDisabled is returned by DebugJSON when Config.EnableStats was
// not set at construction.
var ErrStatsDisabled = errors.New("dynalloc: stats are disabled for this allocator")
