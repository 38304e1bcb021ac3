package vm

import (
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/managed"
	"github.com/intuicio-go/kernel/pkg/script"
)

// Debugger receives step-level notifications from a Scope, per spec.md
// §6. OnEnterScope fires on every step taken while the scope is at
// position 0 (its first step, and again each time a LoopScope at position
// 0 re-executes); OnEnterOperation/OnExitOperation bracket every
// operation; OnExitScope fires on the step that reaches the end of the
// script and again on the step that reports Completed, so a scope that
// runs at least one operation and ends without PopScope or a failed
// ContinueScopeConditionally reports it twice.
type Debugger interface {
	OnEnterScope(scope *Scope, ctx *core.Context, registry *core.Registry)
	OnEnterOperation(scope *Scope, op script.Operation, position int, ctx *core.Context, registry *core.Registry)
	OnExitOperation(scope *Scope, op script.Operation, position int, ctx *core.Context, registry *core.Registry)
	OnExitScope(scope *Scope, ctx *core.Context, registry *core.Registry)
}

// DebuggerHandle wraps a Debugger in a managed.Managed so notification is
// a non-blocking try-write-acquire: a missed notification (because the
// handle is momentarily held elsewhere, e.g. by a concurrent inspector)
// is by design, per spec.md §6.
type DebuggerHandle struct {
	m *managed.Managed[Debugger]
}

// NewDebuggerHandle wraps d for attachment to a Scope.
func NewDebuggerHandle(d Debugger) *DebuggerHandle {
	return &DebuggerHandle{m: managed.New(d)}
}

func (h *DebuggerHandle) notify(fn func(Debugger)) {
	if h == nil {
		return
	}
	ref, ok := h.m.BorrowMut()
	if !ok {
		return
	}
	defer ref.Close()
	fn(*ref.Get())
}
