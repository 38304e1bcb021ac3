package core

import (
	"strings"

	"github.com/intuicio-go/kernel/pkg/types"
)

// FunctionParameter is one input or output slot of a FunctionSignature.
type FunctionParameter struct {
	Name string
	Type TypeHandle
	Meta types.Meta
}

// FunctionSignature describes a callable's name, visibility, and
// parameter lists, independent of how it is implemented.
type FunctionSignature struct {
	Name       string
	ModuleName string
	OwningType TypeHandle // nil if the function is not a method
	Visibility types.Visibility
	Inputs     []FunctionParameter
	Outputs    []FunctionParameter
	Meta       types.Meta
}

// IsVisible reports whether the signature satisfies a required
// visibility, spec.md §4.5's `signature.is_visible(required)`.
func (s FunctionSignature) IsVisible(required types.Visibility) bool {
	return s.Visibility.AtLeast(required)
}

// String renders the deterministic signature display from spec.md §4.5:
// "[#meta ] [mod M ] [struct S ] fn N(p1: T1, …) -> (r1: R1, …)".
func (s FunctionSignature) String() string {
	var b strings.Builder
	if s.Meta != nil {
		b.WriteString("#meta ")
	}
	if s.ModuleName != "" {
		b.WriteString("mod ")
		b.WriteString(s.ModuleName)
		b.WriteString(" ")
	}
	if s.OwningType != nil {
		b.WriteString("struct ")
		b.WriteString(s.OwningType.Name())
		b.WriteString(" ")
	}
	b.WriteString("fn ")
	b.WriteString(s.Name)
	b.WriteString("(")
	for i, p := range s.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type.Name())
	}
	b.WriteString(") -> (")
	for i, p := range s.Outputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type.Name())
	}
	b.WriteString(")")
	return b.String()
}

// NativeBody is a function implemented directly in Go: it reads its
// inputs off ctx's stack and pushes its outputs, per spec.md §4.5's
// invocation contract.
type NativeBody func(ctx *Context, registry *Registry)

// ScriptedBodyFactory builds the VM scope runner for a scripted function.
// It is declared as an interface rather than importing pkg/vm directly, to
// avoid a pkg/core -> pkg/vm -> pkg/core import cycle (pkg/vm needs
// Context, Registry, and Function from pkg/core). pkg/vm supplies the
// concrete implementation at registration time.
type ScriptedBodyFactory interface {
	Run(ctx *Context, registry *Registry)
}

// Body is the Function's two-variant dispatch: a native Go closure, or a
// scripted body that instantiates a VM scope — spec.md §9's "FunctionBody
// sum type with two variants".
type Body struct {
	Native  NativeBody
	Scripts ScriptedBodyFactory
}

func (b Body) invoke(ctx *Context, registry *Registry) {
	switch {
	case b.Native != nil:
		b.Native(ctx, registry)
	case b.Scripts != nil:
		b.Scripts.Run(ctx, registry)
	default:
		panic("core: function body has neither a native nor scripted implementation")
	}
}

// Function pairs a signature with its implementation body.
type Function struct {
	Signature FunctionSignature
	Body      Body
}

// NewNativeFunction builds a Function with a native Go body.
func NewNativeFunction(sig FunctionSignature, body NativeBody) *Function {
	return &Function{Signature: sig, Body: Body{Native: body}}
}

// NewScriptedFunction builds a Function whose body runs a VM scope.
func NewScriptedFunction(sig FunctionSignature, factory ScriptedBodyFactory) *Function {
	return &Function{Signature: sig, Body: Body{Scripts: factory}}
}

func (f *Function) String() string { return f.Signature.String() }

// Invoke brackets the body with store/restore so the callee's register
// frame is independent of the caller's, per spec.md §4.5. It is exported
// so the VM scope stepper (pkg/vm) can invoke a resolved FunctionHandle
// directly for a CallFunction operation.
func (f *Function) Invoke(ctx *Context, registry *Registry) {
	ctx.StoreRegisters()
	defer ctx.RestoreRegisters()
	f.Body.invoke(ctx, registry)
}

// callVerify backs the verified, fixed-arity calling convention spec.md
// §4.5 describes as Function::call<O, I>. Go's generics cannot express a
// variadic input/output tuple as one type parameter pack, so the kernel
// exposes one generic helper per small input/output arity (Call1In1Out,
// Call2In1Out, …) instead of a single maximally-generic call — an Open
// Question resolution recorded in DESIGN.md.
//
// verify validates parameter counts and type hashes against the
// signature and panics on mismatch (a host contract violation, per
// spec.md §4.5); it is normally true except in perf-critical call sites
// that have already validated once.
func callVerify(sig FunctionSignature, inputHashes, outputHashes []types.TypeHash) {
	if len(sig.Inputs) != len(inputHashes) {
		panic("core: function call input arity mismatch")
	}
	for i, p := range sig.Inputs {
		if p.Type.TypeHash() != inputHashes[i] {
			panic("core: function call input type mismatch at index " + itoa(i))
		}
	}
	if len(sig.Outputs) != len(outputHashes) {
		panic("core: function call output arity mismatch")
	}
	for i, p := range sig.Outputs {
		if p.Type.TypeHash() != outputHashes[i] {
			panic("core: function call output type mismatch at index " + itoa(i))
		}
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Call2In1Out invokes f with two inputs pushed in reversed order (B then
// A, so the callee pops A then B in declaration order) and returns the
// single declared output, per spec.md §4.5.
func Call2In1Out[A, B, O any](f *Function, ctx *Context, registry *Registry, a A, b B, verify bool) O {
	if verify {
		callVerify(f.Signature, []types.TypeHash{types.HashOf[A](), types.HashOf[B]()}, []types.TypeHash{types.HashOf[O]()})
	}
	PushValue(ctx, b)
	PushValue(ctx, a)
	f.Invoke(ctx, registry)
	out, ok := PopValue[O](ctx)
	if !ok {
		panic("core: function call output type mismatch on pop")
	}
	return out
}

// Call1In1Out invokes f with a single input and single output.
func Call1In1Out[A, O any](f *Function, ctx *Context, registry *Registry, a A, verify bool) O {
	if verify {
		callVerify(f.Signature, []types.TypeHash{types.HashOf[A]()}, []types.TypeHash{types.HashOf[O]()})
	}
	PushValue(ctx, a)
	f.Invoke(ctx, registry)
	out, ok := PopValue[O](ctx)
	if !ok {
		panic("core: function call output type mismatch on pop")
	}
	return out
}

// Call0In1Out invokes f with no inputs and a single output.
func Call0In1Out[O any](f *Function, ctx *Context, registry *Registry, verify bool) O {
	if verify {
		callVerify(f.Signature, nil, []types.TypeHash{types.HashOf[O]()})
	}
	f.Invoke(ctx, registry)
	out, ok := PopValue[O](ctx)
	if !ok {
		panic("core: function call output type mismatch on pop")
	}
	return out
}

// Call3In1Out invokes f with three inputs (pushed C, B, A so the callee
// pops A, B, C in declaration order) and a single output.
func Call3In1Out[A, B, C, O any](f *Function, ctx *Context, registry *Registry, a A, b B, c C, verify bool) O {
	if verify {
		callVerify(f.Signature,
			[]types.TypeHash{types.HashOf[A](), types.HashOf[B](), types.HashOf[C]()},
			[]types.TypeHash{types.HashOf[O]()})
	}
	PushValue(ctx, c)
	PushValue(ctx, b)
	PushValue(ctx, a)
	f.Invoke(ctx, registry)
	out, ok := PopValue[O](ctx)
	if !ok {
		panic("core: function call output type mismatch on pop")
	}
	return out
}
