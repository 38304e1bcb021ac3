package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

func TestDataStackPushPopRoundtrip(t *testing.T) {
	ctx := core.NewContext()
	core.PushValue(ctx, int32(1))
	core.PushValue(ctx, "hello")

	s, ok := core.PopValue[string](ctx)
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	i, ok := core.PopValue[int32](ctx)
	require.True(t, ok)
	assert.Equal(t, int32(1), i)

	assert.Equal(t, 0, ctx.Stack.Position())
}

func TestDataStackPopMismatchLeavesStackUnchanged(t *testing.T) {
	ctx := core.NewContext()
	core.PushValue(ctx, int32(7))

	_, ok := core.PopValue[string](ctx)
	assert.False(t, ok)
	assert.Equal(t, 1, ctx.Stack.Position(), "a pop-type mismatch must not consume the entry")

	v, ok := core.PopValue[int32](ctx)
	require.True(t, ok)
	assert.Equal(t, int32(7), v)
}

func TestRegisterDefinePopToRegisterTypeCheck(t *testing.T) {
	i32 := types.NewNativeStruct[int32]("i32").Build()
	ctx := core.NewContext()

	idx := ctx.DefineRegister(i32)
	core.PushValue(ctx, int32(9))
	ctx.PopToRegisterValue(idx)

	hash, ok := ctx.RegisterHash(idx)
	require.True(t, ok)
	assert.Equal(t, i32.TypeHash(), hash)
}

func TestRegisterPopToRegisterPanicsOnTypeMismatch(t *testing.T) {
	i32 := types.NewNativeStruct[int32]("i32").Build()
	ctx := core.NewContext()
	idx := ctx.DefineRegister(i32)
	core.PushValue(ctx, "wrong type")

	assert.Panics(t, func() {
		ctx.PopToRegisterValue(idx)
	})
}

func TestRegisterMoveOutPreservesExpectedAcrossDoubleMovePanic(t *testing.T) {
	i32 := types.NewNativeStruct[int32]("i32").Build()
	ctx := core.NewContext()
	idx := ctx.DefineRegister(i32)
	core.PushValue(ctx, int32(3))
	ctx.PopToRegisterValue(idx)

	ctx.PushFromRegisterValue(idx)
	v, ok := core.PopValue[int32](ctx)
	require.True(t, ok)
	assert.Equal(t, int32(3), v)

	assert.Panics(t, func() {
		ctx.PushFromRegisterValue(idx)
	}, "pushing from an already-vacated register is a double move")

	core.PushValue(ctx, int32(4))
	ctx.PopToRegisterValue(idx)
	hash, ok := ctx.RegisterHash(idx)
	require.True(t, ok)
	assert.Equal(t, i32.TypeHash(), hash, "expected type must survive the move-out/move-back cycle")
}

func TestMoveRegisterValueTransfersOccupancy(t *testing.T) {
	i32 := types.NewNativeStruct[int32]("i32").Build()
	ctx := core.NewContext()
	a := ctx.DefineRegister(i32)
	b := ctx.DefineRegister(i32)

	core.PushValue(ctx, int32(5))
	ctx.PopToRegisterValue(a)
	ctx.MoveRegisterValue(a, b)

	_, ok := ctx.RegisterHash(a)
	assert.False(t, ok)
	hash, ok := ctx.RegisterHash(b)
	require.True(t, ok)
	assert.Equal(t, i32.TypeHash(), hash)
}

func TestStoreRestoreRegistersIsolatesFrame(t *testing.T) {
	i32 := types.NewNativeStruct[int32]("i32").Build()
	ctx := core.NewContext()
	outer := ctx.DefineRegister(i32)
	assert.Equal(t, 0, outer)

	ctx.StoreRegisters()
	inner := ctx.DefineRegister(i32)
	assert.Equal(t, 0, inner, "a new frame resets frame-relative indices")
	ctx.RestoreRegisters()

	assert.Equal(t, 1, ctx.Registers.Position(), "restoring drops everything allocated in the nested frame")
}

func TestRestoreRegistersWithoutStorePanics(t *testing.T) {
	ctx := core.NewContext()
	assert.Panics(t, func() {
		ctx.RestoreRegisters()
	})
}

func TestCustomSlotRoundtrip(t *testing.T) {
	ctx := core.NewContext()
	_, ok := ctx.Custom("debugger")
	assert.False(t, ok)

	ctx.SetCustom("debugger", 42)
	v, ok := ctx.Custom("debugger")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestDataStackDropTopFinalizesClosers(t *testing.T) {
	ctx := core.NewContext()
	closed := false
	ctx.Stack.PushRaw(types.HashOf[*closingStub](), &closingStub{onClose: func() { closed = true }})

	ok := ctx.Stack.DropTop()
	require.True(t, ok)
	assert.True(t, closed)
}

type closingStub struct{ onClose func() }

func (c *closingStub) Close() { c.onClose() }
