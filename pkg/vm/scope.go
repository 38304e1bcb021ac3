package vm

import (
	"sync/atomic"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/script"
)

// Result is the outcome of a single Scope.Step call, spec.md §4.7.
type Result int

const (
	Continue Result = iota
	Completed
	Suspended
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Completed:
		return "completed"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

var symbolCounter atomic.Uint64

// Symbol is an opaque per-scope identity, stable across Clone but
// replaced on fresh construction.
type Symbol uint64

func nextSymbol() Symbol { return Symbol(symbolCounter.Add(1)) }

// Scope is the tree-structured interpreter node spec.md §3/§4.7 describes
// as VM Scope: it steps through handle's operations in order, spawning at
// most one child scope at a time for BranchScope/LoopScope/PushScope.
type Scope struct {
	handle   *script.Script
	symbol   Symbol
	position int
	child    *Scope
	debugger *DebuggerHandle
}

// NewScope wraps handle in a fresh Scope with a newly assigned symbol. Use
// this only for a true top-level invocation; a scope spawning a child for
// BranchScope/LoopScope/PushScope must share its own symbol with that
// child instead (see newChildScope), so the whole running tree of one
// invocation carries a single identity.
func NewScope(handle *script.Script) *Scope {
	return &Scope{handle: handle, symbol: nextSymbol()}
}

// newChildScope wraps handle as a child of a scope carrying symbol,
// inheriting both the parent's identity and its debugger attachment.
func newChildScope(handle *script.Script, symbol Symbol, debugger *DebuggerHandle) *Scope {
	return &Scope{handle: handle, symbol: symbol, debugger: debugger}
}

// WithDebugger attaches a debugger handle, returning the Scope for
// chaining.
func (s *Scope) WithDebugger(d *DebuggerHandle) *Scope {
	s.debugger = d
	return s
}

// Symbol returns the scope's opaque identity.
func (s *Scope) Symbol() Symbol { return s.symbol }

// Position returns the current instruction offset into handle.
func (s *Scope) Position() int { return s.position }

// HasCompleted reports whether position has reached the end of handle.
func (s *Scope) HasCompleted() bool { return s.position >= s.handle.Len() }

// Clone deep-clones the scope's child chain but preserves its symbol, per
// spec.md §4.7's determinism guarantee.
func (s *Scope) Clone() *Scope {
	clone := &Scope{handle: s.handle, symbol: s.symbol, position: s.position, debugger: s.debugger}
	if s.child != nil {
		clone.child = s.child.Clone()
	}
	return clone
}

// Restore replaces scope state to resume a serialized execution. It is
// the kernel's one explicitly unsafe operation outside raw memory access:
// callers must ensure the Script, Context, Registry, and register frames
// match the point the (position, child) pair was captured at, per
// spec.md §4.7.
func (s *Scope) Restore(position int, child *Scope) {
	s.position = position
	s.child = child
}

// Step executes at most one instruction of progress per spec.md §4.7's
// stepping algorithm and returns the resulting Result.
func (s *Scope) Step(ctx *core.Context, registry *core.Registry) Result {
	if s.child != nil {
		result := s.child.Step(ctx, registry)
		if result != Completed {
			return result
		}
		s.child = nil
	}

	if s.position == 0 {
		s.debugger.notify(func(d Debugger) { d.OnEnterScope(s, ctx, registry) })
	}

	var result Result
	if s.position < s.handle.Len() {
		op := s.handle.At(s.position)
		s.debugger.notify(func(d Debugger) { d.OnEnterOperation(s, op, s.position, ctx, registry) })
		result = s.execute(op, ctx, registry)
		s.debugger.notify(func(d Debugger) { d.OnExitOperation(s, op, s.position, ctx, registry) })
	} else {
		result = Completed
		s.position = s.handle.Len()
	}

	if result == Completed || s.position >= s.handle.Len() {
		s.debugger.notify(func(d Debugger) { d.OnExitScope(s, ctx, registry) })
	}

	return result
}

// execute runs a single Operation and reports the Step result it
// produces, per spec.md §4.6/§4.7. Failure modes spec.md §4.7 calls fatal
// (unresolved CallFunction/DefineRegister names, bad register indices,
// stack type mismatches on control operations) surface as Go panics.
func (s *Scope) execute(op script.Operation, ctx *core.Context, registry *core.Registry) Result {
	switch o := op.(type) {
	case script.None:
		s.position++
		return Continue

	case script.ExpressionOp:
		o.Expr.Evaluate(ctx, registry)
		s.position++
		return Continue

	case script.DefineRegister:
		t, ok := registry.FindType(o.Query)
		if !ok {
			panic("vm: define_register references an unresolved type")
		}
		ctx.DefineRegister(t)
		s.position++
		return Continue

	case script.DropRegister:
		ctx.DropRegister(o.Index)
		s.position++
		return Continue

	case script.PushFromRegister:
		ctx.PushFromRegisterValue(o.Index)
		s.position++
		return Continue

	case script.PopToRegister:
		ctx.PopToRegisterValue(o.Index)
		s.position++
		return Continue

	case script.MoveRegister:
		ctx.MoveRegisterValue(o.From, o.To)
		s.position++
		return Continue

	case script.CallFunction:
		fn, ok := registry.FindFunction(o.Query)
		if !ok {
			panic("vm: call_function references an unresolved function")
		}
		fn.Invoke(ctx, registry)
		s.position++
		return Continue

	case script.BranchScope:
		cond := popBool(ctx)
		s.position++
		if cond {
			s.child = newChildScope(o.Success, s.symbol, s.debugger)
		} else if o.Failure != nil {
			s.child = newChildScope(o.Failure, s.symbol, s.debugger)
		}
		return Continue

	case script.LoopScope:
		cond := popBool(ctx)
		if cond {
			s.child = newChildScope(o.Body, s.symbol, s.debugger)
			return Continue
		}
		s.position++
		return Continue

	case script.PushScope:
		ctx.StoreRegisters()
		s.child = newChildScope(o.Body, s.symbol, s.debugger)
		s.position++
		return Continue

	case script.PopScope:
		ctx.RestoreRegisters()
		s.position = s.handle.Len()
		return Completed

	case script.ContinueScopeConditionally:
		if popBool(ctx) {
			s.position++
			return Continue
		}
		s.position = s.handle.Len()
		return Completed

	case script.Suspend:
		s.position++
		return Suspended

	default:
		panic("vm: unhandled script operation")
	}
}

func popBool(ctx *core.Context) bool {
	v, ok := core.PopValue[bool](ctx)
	if !ok {
		panic("vm: expected a bool on top of the stack")
	}
	return v
}

// Run steps s to completion. A Suspended result does not stop it: Run
// keeps stepping past the Suspend and returns only once the Script
// completes, so a Script whose loop never pops false never returns.
func (s *Scope) Run(ctx *core.Context, registry *core.Registry) {
	for {
		switch s.Step(ctx, registry) {
		case Completed:
			return
		case Suspended:
			continue
		}
	}
}

// RunUntilSuspended steps s until it reports Suspended or Completed,
// returning that terminal Result.
func (s *Scope) RunUntilSuspended(ctx *core.Context, registry *core.Registry) Result {
	for {
		switch r := s.Step(ctx, registry); r {
		case Completed, Suspended:
			return r
		}
	}
}
