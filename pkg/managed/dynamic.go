package managed

import (
	"weak"

	"github.com/intuicio-go/kernel/pkg/lifetime"
	"github.com/intuicio-go/kernel/pkg/types"
)

// DynamicManaged is the TypeHash-erased counterpart of Managed[T], for
// embedders that resolve types at runtime rather than via a Go type
// parameter (e.g. a script interpreter holding a value whose static Go
// type is unknown to the caller).
type DynamicManaged struct {
	state *lifetime.State
	hash  types.TypeHash
	value any
}

// NewDynamic wraps v, tagged with hash, in a freshly allocated
// DynamicManaged handle.
func NewDynamic(hash types.TypeHash, v any) *DynamicManaged {
	return &DynamicManaged{state: lifetime.New(), hash: hash, value: v}
}

// Hash returns the TypeHash the handle was constructed with.
func (m *DynamicManaged) Hash() types.TypeHash { return m.hash }

// Borrow acquires a shared read handle over the type-erased value.
func (m *DynamicManaged) Borrow() (DynamicManagedRef, bool) {
	if !m.state.TryAcquireRead() {
		return DynamicManagedRef{}, false
	}
	return DynamicManagedRef{state: m.state, hash: m.hash, value: m.value}, true
}

// BorrowMut acquires an exclusive write handle over the type-erased
// value. Because the write side must be able to replace m.value in
// place, it is handed a pointer back to the owning DynamicManaged rather
// than a bare value copy.
func (m *DynamicManaged) BorrowMut() (DynamicManagedRefMut, bool) {
	depth, ok := m.state.TryAcquireWrite()
	if !ok {
		return DynamicManagedRefMut{}, false
	}
	return DynamicManagedRefMut{state: m.state, depth: depth, owner: m}, true
}

// Lazy returns a weak handle revalidating against m on every access.
func (m *DynamicManaged) Lazy() DynamicManagedLazy {
	return DynamicManagedLazy{weak: weak.Make(m)}
}

// Consume extracts the owned value, iff no borrow is currently
// outstanding.
func (m *DynamicManaged) Consume() (any, bool) {
	if !m.state.IsIdle() {
		return nil, false
	}
	return m.value, true
}

// DynamicManagedRef is a non-owning shared-read handle over a
// DynamicManaged's value.
type DynamicManagedRef struct {
	state *lifetime.State
	hash  types.TypeHash
	value any
}

// Hash returns the borrowed value's TypeHash.
func (r DynamicManagedRef) Hash() types.TypeHash { return r.hash }

// Read returns the borrowed value as T, iff hash matches T's native
// TypeHash.
func Read[T any](r DynamicManagedRef) (T, bool) {
	var zero T
	if r.hash != types.HashOf[T]() {
		return zero, false
	}
	v, ok := r.value.(T)
	return v, ok
}

// Close releases the read borrow.
func (r DynamicManagedRef) Close() {
	if r.state != nil {
		r.state.ReleaseRead()
	}
}

// DynamicManagedRefMut is a non-owning exclusive-write handle over a
// DynamicManaged's value.
type DynamicManagedRefMut struct {
	state *lifetime.State
	depth uint32
	owner *DynamicManaged
}

// Hash returns the borrowed value's TypeHash.
func (r DynamicManagedRefMut) Hash() types.TypeHash { return r.owner.hash }

// Write replaces the borrowed value with v, iff hash matches T's native
// TypeHash; returns false (leaving the value unchanged) on mismatch.
func Write[T any](r DynamicManagedRefMut, v T) bool {
	if r.owner.hash != types.HashOf[T]() {
		return false
	}
	r.owner.value = v
	return true
}

// Close releases the write borrow.
func (r DynamicManagedRefMut) Close() {
	if r.state != nil {
		r.state.ReleaseWrite(r.depth)
	}
}

// DynamicManagedLazy is the type-erased counterpart of ManagedLazy[T].
type DynamicManagedLazy struct {
	weak weak.Pointer[DynamicManaged]
}

// Read constructs a read guard if the upstream DynamicManaged is alive
// and read-accessible.
func (l DynamicManagedLazy) Read() (DynamicManagedRef, bool) {
	m := l.weak.Value()
	if m == nil {
		return DynamicManagedRef{}, false
	}
	return m.Borrow()
}

// Write constructs a write guard if the upstream DynamicManaged is alive
// and write-accessible.
func (l DynamicManagedLazy) Write() (DynamicManagedRefMut, bool) {
	m := l.weak.Value()
	if m == nil {
		return DynamicManagedRefMut{}, false
	}
	return m.BorrowMut()
}
