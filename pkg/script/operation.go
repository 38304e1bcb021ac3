package script

import (
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

// Expression is a host-implemented pure stack effect, spec.md §6's
// expression host hook. Expressions must be finite: they may not suspend.
type Expression interface {
	Evaluate(ctx *core.Context, registry *core.Registry)
}

// ExpressionFunc adapts a plain function to Expression.
type ExpressionFunc func(ctx *core.Context, registry *core.Registry)

func (f ExpressionFunc) Evaluate(ctx *core.Context, registry *core.Registry) { f(ctx, registry) }

// Operation is the sum type spec.md §4.6 describes as ScriptOperation.
// Each constructor below implements it; a VM scope steps an Operation by
// type-switching over the concrete variant.
type Operation interface {
	isOperation()
}

// None is a no-op; stepping it only advances position.
type None struct{}

func (None) isOperation() {}

// ExpressionOp calls Expr.Evaluate(context, registry).
type ExpressionOp struct {
	Expr Expression
}

func (ExpressionOp) isOperation() {}

// DefineRegister looks up a type via Query and allocates a register for
// it in the current frame.
type DefineRegister struct {
	Query types.TypeQuery
}

func (DefineRegister) isOperation() {}

// DropRegister finalizes and frees the register at frame-relative index
// Index.
type DropRegister struct {
	Index int
}

func (DropRegister) isOperation() {}

// PushFromRegister copies register Index's contents onto the stack.
type PushFromRegister struct {
	Index int
}

func (PushFromRegister) isOperation() {}

// PopToRegister pops the stack top into register Index.
type PopToRegister struct {
	Index int
}

func (PopToRegister) isOperation() {}

// MoveRegister transfers register From's contents into register To.
type MoveRegister struct {
	From, To int
}

func (MoveRegister) isOperation() {}

// CallFunction resolves a function via Query and invokes it.
type CallFunction struct {
	Query core.FunctionQuery
}

func (CallFunction) isOperation() {}

// BranchScope pops a boolean; installs Success as the child scope if
// true, Failure if false and present, or otherwise proceeds without
// installing a child.
type BranchScope struct {
	Success *Script
	Failure *Script // optional
}

func (BranchScope) isOperation() {}

// LoopScope pops a boolean; if true, installs Body as the child scope
// without advancing position, so the same LoopScope re-executes once the
// child completes; if false, advances past it.
type LoopScope struct {
	Body *Script
}

func (LoopScope) isOperation() {}

// PushScope runs store_registers, installs Body as the child scope, and
// advances position so the parent moves on once the child completes.
type PushScope struct {
	Body *Script
}

func (PushScope) isOperation() {}

// PopScope runs restore_registers and marks the current scope Completed,
// short-circuiting any remaining operations.
type PopScope struct{}

func (PopScope) isOperation() {}

// ContinueScopeConditionally pops a boolean; false marks the current
// scope Completed, true advances normally.
type ContinueScopeConditionally struct{}

func (ContinueScopeConditionally) isOperation() {}

// Suspend yields control to the driver; position advances so re-entry
// proceeds past it. It is the sole cooperative yield point (spec.md §5).
type Suspend struct{}

func (Suspend) isOperation() {}
