// Package managed implements the kernel's borrow-checked value handles:
// Managed[T] (owning), ManagedRef[T]/ManagedRefMut[T] (borrowed), and
// ManagedLazy[T] (weak, revalidated on every access) — plus TypeHash-
// erased Dynamic* counterparts for embedders that cannot name T
// statically. All borrow accounting is delegated to pkg/lifetime; this
// package only adds the typed (or type-erased) payload and weak-pointer
// plumbing on top.
package managed
