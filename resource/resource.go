// SPDX-License-Identifier: EPL-2.0

package resource

// Resource owns at most one raw value of type T. The zero value of T is
// the empty state. Ownership is never copied: use Take or MoveFrom to
// transfer it, which leaves the source empty.
//
// A Resource must not be copied after first use; pass *Resource around.
type Resource[T comparable] struct {
	raw     T
	destroy func(T)
}

// New returns an empty Resource that will release values with destroy.
func New[T comparable](destroy func(T)) Resource[T] {
	return Resource[T]{destroy: destroy}
}

// Own returns a Resource that already owns raw.
func Own[T comparable](raw T, destroy func(T)) Resource[T] {
	return Resource[T]{raw: raw, destroy: destroy}
}

// Valid reports whether r currently owns a non-empty value.
func (r *Resource[T]) Valid() bool {
	var zero T
	return r.raw != zero
}

// Get returns the owned value without affecting ownership.
func (r *Resource[T]) Get() T { return r.raw }

// Release gives up ownership without destroying and returns the value.
func (r *Resource[T]) Release() T {
	var zero T
	old := r.raw
	r.raw = zero

	return old
}

// Acquire takes ownership of raw. Any value r already held is dropped
// without being destroyed; the caller must make sure it does not leak.
func (r *Resource[T]) Acquire(raw T) { r.raw = raw }

// Destroy releases the owned value through the destroy function. It is a
// no-op on an empty Resource and safe to call repeatedly.
func (r *Resource[T]) Destroy() {
	if !r.Valid() {
		return
	}

	raw := r.Release()
	if r.destroy != nil {
		r.destroy(raw)
	}
}

// Reset destroys the current value, if any, and takes ownership of raw.
func (r *Resource[T]) Reset(raw T) {
	r.Destroy()
	r.Acquire(raw)
}

// Take moves ownership into a new Resource and leaves r empty.
func (r *Resource[T]) Take() Resource[T] {
	return Resource[T]{raw: r.Release(), destroy: r.destroy}
}

// MoveFrom destroys what r owns and takes over other's value, leaving
// other empty. Moving a Resource onto itself does nothing.
func (r *Resource[T]) MoveFrom(other *Resource[T]) {
	if r == other {
		return
	}

	r.Destroy()
	r.destroy = other.destroy
	r.Acquire(other.Release())
}
