// Package program loads the kernel CLI's minimal textual script form: a
// JSON document describing a sequence of operations against the
// built-in type/function registry, compiled into a pkg/script.Script.
package program

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/script"
	"github.com/intuicio-go/kernel/pkg/types"
)

// Op is one JSON-encoded operation. Kind selects which pkg/script
// constructor it compiles to; the remaining fields are interpreted
// according to Kind, unused ones ignored.
type Op struct {
	Kind  string `json:"kind"`
	Type  string `json:"type,omitempty"`  // define_register: basic type name, e.g. "i32"
	Index int    `json:"index,omitempty"` // drop_register, push_from_register, pop_to_register
	From  int    `json:"from,omitempty"`  // move_register
	To    int    `json:"to,omitempty"`    // move_register
	Func  string `json:"func,omitempty"`  // call_function: "module.name"
	Push  *Value `json:"push,omitempty"`  // expression: push a literal value
	Success []Op `json:"success,omitempty"` // branch_scope
	Failure []Op `json:"failure,omitempty"` // branch_scope
	Body    []Op `json:"body,omitempty"`    // loop_scope / push_scope
}

// Value is a literal the "push" expression shorthand encodes.
type Value struct {
	I32    *int32   `json:"i32,omitempty"`
	F64    *float64 `json:"f64,omitempty"`
	Bool   *bool    `json:"bool,omitempty"`
	String *string  `json:"string,omitempty"`
}

// Document is the root of a loaded program file.
type Document struct {
	Name       string `json:"name"`
	Operations []Op   `json:"operations"`
}

// Load reads path, builds a Registry seeded with the basic types and the
// CLI's small arithmetic stdlib, and compiles Operations into a Script.
func Load(path string) (*core.Registry, *script.Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("program: parse %s: %w", path, err)
	}

	registry := core.NewRegistry().WithBasicTypes()
	RegisterStdlib(registry)

	builder := script.NewBuilder()
	if err := compile(builder, doc.Operations); err != nil {
		return nil, nil, err
	}
	return registry, builder.Build(), nil
}

func compile(b *script.Builder, ops []Op) error {
	for _, op := range ops {
		switch op.Kind {
		case "none":
			b.None()
		case "expression":
			if op.Push == nil {
				return fmt.Errorf("program: expression operation needs a push literal")
			}
			v, hash, err := op.Push.resolve()
			if err != nil {
				return err
			}
			b.Expression(pushLiteral{hash: hash, value: v})
		case "define_register":
			b.DefineRegister(types.QueryNamed(op.Type))
		case "drop_register":
			b.DropRegister(op.Index)
		case "push_from_register":
			b.PushFromRegister(op.Index)
		case "pop_to_register":
			b.PopToRegister(op.Index)
		case "move_register":
			b.MoveRegister(op.From, op.To)
		case "call_function":
			module, name, err := splitFunc(op.Func)
			if err != nil {
				return err
			}
			b.CallFunction(core.FunctionQuery{Name: &name, ModuleName: &module})
		case "branch_scope":
			success, err := buildSub(op.Success)
			if err != nil {
				return err
			}
			var failure *script.Script
			if op.Failure != nil {
				failure, err = buildSub(op.Failure)
				if err != nil {
					return err
				}
			}
			b.BranchScope(success, failure)
		case "loop_scope":
			body, err := buildSub(op.Body)
			if err != nil {
				return err
			}
			b.LoopScope(body)
		case "push_scope":
			body, err := buildSub(op.Body)
			if err != nil {
				return err
			}
			b.PushScope(body)
		case "pop_scope":
			b.PopScope()
		case "continue_scope_conditionally":
			b.ContinueScopeConditionally()
		case "suspend":
			b.Suspend()
		default:
			return fmt.Errorf("program: unknown operation kind %q", op.Kind)
		}
	}
	return nil
}

func buildSub(ops []Op) (*script.Script, error) {
	sub := script.NewBuilder()
	if err := compile(sub, ops); err != nil {
		return nil, err
	}
	return sub.Build(), nil
}

func splitFunc(qualified string) (module, name string, err error) {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[:i], qualified[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("program: call_function %q must be \"module.name\"", qualified)
}

func (v *Value) resolve() (any, types.TypeHash, error) {
	switch {
	case v.I32 != nil:
		return *v.I32, types.HashOf[int32](), nil
	case v.F64 != nil:
		return *v.F64, types.HashOf[float64](), nil
	case v.Bool != nil:
		return *v.Bool, types.HashOf[bool](), nil
	case v.String != nil:
		return *v.String, types.HashOf[string](), nil
	default:
		return nil, 0, fmt.Errorf("program: push literal has no value set")
	}
}

// pushLiteral is the Expression a "push" literal compiles to.
type pushLiteral struct {
	hash  types.TypeHash
	value any
}

func (p pushLiteral) Evaluate(ctx *core.Context, registry *core.Registry) {
	ctx.Stack.PushRaw(p.hash, p.value)
}
