//go:build !dynalloc_debug

package freelist

// debugValidate is a no-op outside the dynalloc_debug build.
func (r *Registry) debugValidate() {}
