// Package lifetime implements the kernel's non-blocking borrow-accounting
// discipline: a State tracks outstanding read/write borrows of a single
// value, and ValueReadAccess/ValueWriteAccess are the access guards built
// on top of it (the borrow handles themselves live in pkg/managed). Every
// transition is a fallible, never-blocking try-acquire guarded by a spin
// latch — there is no
// condition variable or channel wait anywhere in this package.
package lifetime
