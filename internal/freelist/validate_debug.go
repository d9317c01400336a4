//go:build dynalloc_debug

package freelist

// debugValidate panics on the first invariant violation it finds. It is
// only compiled in under the dynalloc_debug build tag, following the
// debug_mem_utils build-tag pattern of the memutils package.
func (r *Registry) debugValidate() {
	if err := r.Validate(); err != nil {
		panic(err)
	}
}
