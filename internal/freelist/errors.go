package freelist

import "github.com/pkg/errors"

var (
	// ErrUnknownAddress is returned internally when Free is asked to
	// release an address the registry does not recognize. The public
	// Allocator surfaces this as a plain false return, per spec.
	ErrUnknownAddress = errors.New("freelist: address not recognized")

	// ErrShrinkUnsatisfied is returned internally when Resize's shrink
	// path cannot release enough primary descriptors to reach the
	// requested target.
	ErrShrinkUnsatisfied = errors.New("freelist: could not shrink to target")

	// ErrInvalidSize is returned for a non-positive allocation size or a
	// negative resize target.
	ErrInvalidSize = errors.New("freelist: invalid size")
)
