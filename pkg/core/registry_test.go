package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

func TestFindTypeOfNativeMatchesHash(t *testing.T) {
	r := core.NewRegistry().WithBasicTypes()

	h, ok := r.FindType(types.QueryOf[int32]())
	require.True(t, ok)
	assert.Equal(t, types.HashOf[int32](), h.TypeHash())
}

func TestAddTypeReplacesOnDuplicateHash(t *testing.T) {
	r := core.NewRegistry()
	first := types.NewRuntimeStruct("vector").ModuleName("math").Build()
	second := types.NewRuntimeStruct("vector").ModuleName("math").
		Field(types.StructField{Name: "x", Type: types.NewNativeStruct[float32]("f32").Build()}).
		Build()

	r.AddType(first)
	r.AddType(second)

	found, ok := r.FindType(types.QueryHash(first.TypeHash()))
	require.True(t, ok)
	assert.Same(t, second, found)
}

func TestFindFunctionByNameAndModule(t *testing.T) {
	r := core.NewRegistry()
	sig := core.FunctionSignature{Name: "add", ModuleName: "math", Visibility: types.VisibilityPublic}
	fn := core.NewNativeFunction(sig, func(ctx *core.Context, registry *core.Registry) {})
	r.AddFunction(fn)

	found, ok := r.FindFunction(core.FunctionQuery{Name: strp("add"), ModuleName: strp("math")})
	require.True(t, ok)
	assert.Same(t, fn, found)

	_, ok = r.FindFunction(core.QueryFunctionNamed("missing"))
	assert.False(t, ok)
}

func TestRemoveTypeStopsFutureLookups(t *testing.T) {
	r := core.NewRegistry()
	h := r.AddType(types.NewNativeStruct[uint8]("u8").Build())
	r.RemoveType(h)

	_, ok := r.FindType(types.QueryHash(h.TypeHash()))
	assert.False(t, ok)
}

func strp(s string) *string { return &s }
