package script

import (
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

// Script is an immutable, ordered sequence of Operations. Once built it
// is shared by reference (a *Script behaves like the reference-counted
// handle spec.md §3 describes — Go's GC retains it for as long as any
// VM scope or nested operation holds a pointer).
type Script struct {
	operations []Operation
}

// Len returns the operation count.
func (s *Script) Len() int { return len(s.operations) }

// At returns the operation at position i.
func (s *Script) At(i int) Operation { return s.operations[i] }

// Builder assembles a Script fluently. It is the frontend-facing
// construction API; Build freezes the accumulated operations.
type Builder struct {
	operations []Operation
}

// NewBuilder starts an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) push(op Operation) *Builder {
	b.operations = append(b.operations, op)
	return b
}

func (b *Builder) None() *Builder                   { return b.push(None{}) }
func (b *Builder) Expression(e Expression) *Builder { return b.push(ExpressionOp{Expr: e}) }
func (b *Builder) DefineRegister(q types.TypeQuery) *Builder {
	return b.push(DefineRegister{Query: q})
}
func (b *Builder) DropRegister(index int) *Builder     { return b.push(DropRegister{Index: index}) }
func (b *Builder) PushFromRegister(index int) *Builder { return b.push(PushFromRegister{Index: index}) }
func (b *Builder) PopToRegister(index int) *Builder    { return b.push(PopToRegister{Index: index}) }
func (b *Builder) MoveRegister(from, to int) *Builder  { return b.push(MoveRegister{From: from, To: to}) }
func (b *Builder) CallFunction(q core.FunctionQuery) *Builder {
	return b.push(CallFunction{Query: q})
}
func (b *Builder) BranchScope(success, failure *Script) *Builder {
	return b.push(BranchScope{Success: success, Failure: failure})
}
func (b *Builder) LoopScope(body *Script) *Builder { return b.push(LoopScope{Body: body}) }
func (b *Builder) PushScope(body *Script) *Builder { return b.push(PushScope{Body: body}) }
func (b *Builder) PopScope() *Builder              { return b.push(PopScope{}) }
func (b *Builder) ContinueScopeConditionally() *Builder {
	return b.push(ContinueScopeConditionally{})
}
func (b *Builder) Suspend() *Builder { return b.push(Suspend{}) }

// Build freezes the accumulated operations into an immutable Script.
func (b *Builder) Build() *Script {
	ops := make([]Operation, len(b.operations))
	copy(ops, b.operations)
	return &Script{operations: ops}
}
