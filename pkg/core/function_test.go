package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

func addFunction(t *testing.T) *core.Function {
	t.Helper()
	i32 := types.NewNativeStruct[int32]("i32").ModuleName("core").Build()
	sig := core.FunctionSignature{
		Name:       "add",
		ModuleName: "math",
		Visibility: types.VisibilityPublic,
		Inputs: []core.FunctionParameter{
			{Name: "a", Type: i32},
			{Name: "b", Type: i32},
		},
		Outputs: []core.FunctionParameter{{Name: "result", Type: i32}},
	}
	return core.NewNativeFunction(sig, func(ctx *core.Context, registry *core.Registry) {
		b, _ := core.PopValue[int32](ctx)
		a, _ := core.PopValue[int32](ctx)
		core.PushValue(ctx, a+b)
	})
}

// TestCall2In1OutNativeAdd is spec.md §8 seed scenario 1: a native add
// function invoked through the host-facing fixed-arity calling
// convention.
func TestCall2In1OutNativeAdd(t *testing.T) {
	fn := addFunction(t)
	ctx := core.NewContext()
	registry := core.NewRegistry().WithBasicTypes()

	result := core.Call2In1Out[int32, int32, int32](fn, ctx, registry, 2, 3, true)
	assert.Equal(t, int32(5), result)
	assert.Equal(t, 0, ctx.Stack.Position(), "stack must be balanced after a call")
}

func TestCall2In1OutVerifyPanicsOnTypeMismatch(t *testing.T) {
	fn := addFunction(t)
	ctx := core.NewContext()
	registry := core.NewRegistry().WithBasicTypes()

	assert.Panics(t, func() {
		core.Call2In1Out[int64, int32, int32](fn, ctx, registry, 2, 3, true)
	})
}

func TestFunctionSignatureString(t *testing.T) {
	fn := addFunction(t)
	s := fn.Signature.String()
	assert.Contains(t, s, "mod math")
	assert.Contains(t, s, "fn add(a: i32, b: i32)")
	assert.Contains(t, s, "result: i32")
}

func TestFunctionInvokeIsolatesRegisterFrame(t *testing.T) {
	i32 := types.NewNativeStruct[int32]("i32").Build()
	registry := core.NewRegistry().WithBasicTypes()

	inner := core.NewNativeFunction(core.FunctionSignature{Name: "inner"}, func(ctx *core.Context, registry *core.Registry) {
		idx := ctx.DefineRegister(i32)
		require.Equal(t, 0, idx, "callee's register frame starts fresh at 0")
	})

	ctx := core.NewContext()
	outerIdx := ctx.DefineRegister(i32)
	require.Equal(t, 0, outerIdx)

	inner.Invoke(ctx, registry)

	assert.Equal(t, 1, ctx.Registers.Position(), "caller's register frame is restored after the call")
}

func TestScriptedBodyRunsThroughFactory(t *testing.T) {
	ran := false
	factory := scriptedFactoryFunc(func(ctx *core.Context, registry *core.Registry) {
		ran = true
	})
	fn := core.NewScriptedFunction(core.FunctionSignature{Name: "scripted"}, factory)
	fn.Invoke(core.NewContext(), core.NewRegistry())
	assert.True(t, ran)
}

type scriptedFactoryFunc func(ctx *core.Context, registry *core.Registry)

func (f scriptedFactoryFunc) Run(ctx *core.Context, registry *core.Registry) { f(ctx, registry) }
