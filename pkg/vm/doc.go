// Package vm is the kernel's control-flow core: Scope, the tree-
// structured stepper that executes a script.Script one Operation at a
// time, with recursive child scopes for branches, loops, and pushed
// blocks; and Future, a cooperative adapter that polls a Scope under an
// external scheduler, honoring Suspend.
package vm
