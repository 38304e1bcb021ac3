package vm

import (
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/script"
)

// ScriptedBody adapts a script.Script into a core.ScriptedBodyFactory: the
// glue spec.md §4.5 calls "a scripted callable carrying a Script handle."
// A fresh Scope is instantiated per invocation so concurrent calls on
// different Contexts do not share stepper state.
type ScriptedBody struct {
	script   *script.Script
	debugger *DebuggerHandle
}

// NewScriptedBody builds a ScriptedBodyFactory that runs s to completion
// on every invocation.
func NewScriptedBody(s *script.Script) *ScriptedBody {
	return &ScriptedBody{script: s}
}

// WithDebugger attaches a debugger every instantiated Scope reports to.
func (b *ScriptedBody) WithDebugger(d *DebuggerHandle) *ScriptedBody {
	b.debugger = d
	return b
}

// Run implements core.ScriptedBodyFactory.
func (b *ScriptedBody) Run(ctx *core.Context, registry *core.Registry) {
	NewScope(b.script).WithDebugger(b.debugger).Run(ctx, registry)
}

// NewScriptedFunction is a convenience wrapper over
// core.NewScriptedFunction that builds the ScriptedBody for s internally.
func NewScriptedFunction(sig core.FunctionSignature, s *script.Script) *core.Function {
	return core.NewScriptedFunction(sig, NewScriptedBody(s))
}

// GenerateFunction builds a core.ScriptedBodyFactory that runs s to
// completion, and the Symbol that identity is reserved under: every Scope
// spawned by any invocation of the resulting body - including every nested
// BranchScope/LoopScope/PushScope child - shares this one Symbol, so a
// Debugger can tell this body's scopes apart from those of other scopes
// and generated bodies. Separate invocations of the same body carry the
// same Symbol and are not distinguished by it.
func GenerateFunction(s *script.Script, debugger *DebuggerHandle) (core.ScriptedBodyFactory, Symbol) {
	symbol := nextSymbol()
	return &generatedBody{script: s, symbol: symbol, debugger: debugger}, symbol
}

type generatedBody struct {
	script   *script.Script
	symbol   Symbol
	debugger *DebuggerHandle
}

// Run implements core.ScriptedBodyFactory.
func (b *generatedBody) Run(ctx *core.Context, registry *core.Registry) {
	newChildScope(b.script, b.symbol, b.debugger).Run(ctx, registry)
}
