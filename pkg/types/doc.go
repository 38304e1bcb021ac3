// Package types is the kernel's type-system substrate: stable type
// identity (TypeHash), memory layout ({size, align}), the Struct/Enum
// type representation, visibility ordering, and the query predicates the
// registry evaluates against them.
//
// Nothing in this package depends on the registry, the execution context,
// or the function calling convention — it is the leaf layer every other
// kernel package builds on.
package types
