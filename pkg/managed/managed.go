package managed

import (
	"weak"

	"github.com/intuicio-go/kernel/pkg/lifetime"
)

// Managed is an owning handle over a value of type T plus its
// LifetimeState, spec.md §3's Managed<T>. It must be allocated with New
// so ManagedLazy's weak.Pointer can observe its collection.
type Managed[T any] struct {
	state *lifetime.State
	value T
}

// New wraps v in a freshly allocated Managed handle.
func New[T any](v T) *Managed[T] {
	return &Managed[T]{state: lifetime.New(), value: v}
}

// Borrow acquires a shared read handle, or false if a write borrow is
// outstanding.
func (m *Managed[T]) Borrow() (ManagedRef[T], bool) {
	if !m.state.TryAcquireRead() {
		return ManagedRef[T]{}, false
	}
	return ManagedRef[T]{state: m.state, ptr: &m.value}, true
}

// BorrowMut acquires an exclusive write handle, or false if a reader is
// outstanding and no write borrow is already held (see
// lifetime.State.TryAcquireWrite for the nesting rule).
func (m *Managed[T]) BorrowMut() (ManagedRefMut[T], bool) {
	depth, ok := m.state.TryAcquireWrite()
	if !ok {
		return ManagedRefMut[T]{}, false
	}
	return ManagedRefMut[T]{state: m.state, ptr: &m.value, depth: depth}, true
}

// Lazy returns a weak handle that revalidates against m's LifetimeState on
// every access and does not keep m alive.
func (m *Managed[T]) Lazy() ManagedLazy[T] {
	return ManagedLazy[T]{weak: weak.Make(m)}
}

// Consume extracts the owned value, iff no borrow is currently
// outstanding (spec.md §3: "consumed iff not in use").
func (m *Managed[T]) Consume() (T, bool) {
	var zero T
	if !m.state.IsIdle() {
		return zero, false
	}
	return m.value, true
}

// ManagedRef is a non-owning shared-read handle over a Managed[T]'s
// value, released by calling Close.
type ManagedRef[T any] struct {
	state *lifetime.State
	ptr   *T
}

// Get returns the borrowed value's pointer.
func (r ManagedRef[T]) Get() *T { return r.ptr }

// Close releases the read borrow. Close is safe to call on a zero-value
// ManagedRef (e.g. one returned alongside a false ok from Borrow).
func (r ManagedRef[T]) Close() {
	if r.state != nil {
		r.state.ReleaseRead()
	}
}

// ManagedRefMut is a non-owning exclusive-write handle over a
// Managed[T]'s value, released by calling Close. Nested borrow_mut
// acquisitions on the same Managed must be released in LIFO order.
type ManagedRefMut[T any] struct {
	state *lifetime.State
	ptr   *T
	depth uint32
}

// Get returns the borrowed value's pointer.
func (r ManagedRefMut[T]) Get() *T { return r.ptr }

// Close releases this write borrow.
func (r ManagedRefMut[T]) Close() {
	if r.state != nil {
		r.state.ReleaseWrite(r.depth)
	}
}

// ManagedLazy is a weak handle that does not participate in the borrow
// tree: every access revalidates against the upstream Managed[T], which
// may have been collected. This is the escape hatch spec.md §9 names for
// passing a value into an async task without transferring ownership, and
// for representing self-referential structures without deadlocking.
type ManagedLazy[T any] struct {
	weak weak.Pointer[Managed[T]]
}

// Read constructs a read guard if the upstream Managed is alive and
// read-accessible, else returns false. The returned ManagedRef must be
// Closed like any other.
func (l ManagedLazy[T]) Read() (ManagedRef[T], bool) {
	m := l.weak.Value()
	if m == nil {
		return ManagedRef[T]{}, false
	}
	return m.Borrow()
}

// Write constructs a write guard if the upstream Managed is alive and
// write-accessible, else returns false.
func (l ManagedLazy[T]) Write() (ManagedRefMut[T], bool) {
	m := l.weak.Value()
	if m == nil {
		return ManagedRefMut[T]{}, false
	}
	return m.BorrowMut()
}
