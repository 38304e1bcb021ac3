// Package ffi marshals Context stack values into C-ABI-shaped byte
// buffers keyed by TypeHash, spec.md §6's FFI bridge. It is cgo-free:
// marshaling produces plain []byte images a cgo call site (outside this
// module) can pass across the boundary, and unmarshaling reconstructs a
// typed Go value from one.
package ffi
