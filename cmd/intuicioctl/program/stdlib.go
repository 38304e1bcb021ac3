package program

import (
	"fmt"

	"github.com/intuicio-go/kernel/internal/klog"
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

// RegisterStdlib adds the CLI's small built-in function library —
// int32 arithmetic and a diagnostic print — to registry, under module
// "math" and "io" respectively.
func RegisterStdlib(registry *core.Registry) {
	i32, _ := registry.FindType(types.QueryOf[int32]())
	unit, _ := registry.FindType(types.QueryOf[struct{}]())

	arith := func(name string, op func(a, b int32) int32) *core.Function {
		sig := core.FunctionSignature{
			Name:       name,
			ModuleName: "math",
			Visibility: types.VisibilityPublic,
			Inputs:     []core.FunctionParameter{{Name: "a", Type: i32}, {Name: "b", Type: i32}},
			Outputs:    []core.FunctionParameter{{Name: "result", Type: i32}},
		}
		return core.NewNativeFunction(sig, func(ctx *core.Context, registry *core.Registry) {
			b, _ := core.PopValue[int32](ctx)
			a, _ := core.PopValue[int32](ctx)
			core.PushValue(ctx, op(a, b))
		})
	}

	registry.AddFunction(arith("add", func(a, b int32) int32 { return a + b }))
	registry.AddFunction(arith("sub", func(a, b int32) int32 { return a - b }))
	registry.AddFunction(arith("mul", func(a, b int32) int32 { return a * b }))
	registry.AddFunction(arith("div", func(a, b int32) int32 {
		if b == 0 {
			panic("program: division by zero")
		}
		return a / b
	}))

	printSig := core.FunctionSignature{
		Name:       "print",
		ModuleName: "io",
		Visibility: types.VisibilityPublic,
		Inputs:     []core.FunctionParameter{{Name: "value", Type: i32}},
		Outputs:    []core.FunctionParameter{{Name: "result", Type: unit}},
	}
	registry.AddFunction(core.NewNativeFunction(printSig, func(ctx *core.Context, registry *core.Registry) {
		v, _ := core.PopValue[int32](ctx)
		fmt.Println(v)
		klog.Debug("io.print", "value", v)
		core.PushValue(ctx, struct{}{})
	}))
}
