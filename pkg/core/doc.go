// Package core is the kernel's execution substrate: the Registry (the set
// of known types and functions), the Object (a type-erased value backed by
// raw memory), Function (the native/closure calling convention), and
// Context (the per-call data stack and register file).
//
// These four concerns share a package, rather than four, because Registry
// and Function refer to each other (a Function carries a FunctionSignature
// built from Registry types, and Registry indexes Functions by signature) —
// splitting them across packages would force an import cycle that does not
// exist in the reference implementation's single-crate layout.
package core
