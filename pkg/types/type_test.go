package types_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/types"
)

func nativeU8() *types.Type {
	return types.NewNativeStruct[uint8]("u8").ModuleName("core").Build()
}

func nativeU32() *types.Type {
	return types.NewNativeStruct[uint32]("u32").ModuleName("core").Build()
}

func TestRuntimeStructLayout(t *testing.T) {
	// struct Vector3 { x: u8, y: u32 } => offsets 0, 4; size 8, align 4.
	u8 := nativeU8()
	u32 := nativeU32()

	vec := types.NewRuntimeStruct("vector").
		ModuleName("math").
		Field(types.StructField{Name: "x", Visibility: types.VisibilityPublic, Type: u8}).
		Field(types.StructField{Name: "y", Visibility: types.VisibilityPublic, Type: u32}).
		Build()

	require.True(t, vec.IsStruct())
	assert.False(t, vec.IsNative())
	assert.Equal(t, uintptr(8), vec.Layout().Size)
	assert.Equal(t, uintptr(4), vec.Layout().Align)

	fx, ok := vec.FindStructField("x")
	require.True(t, ok)
	assert.Equal(t, uintptr(0), fx.Offset)

	fy, ok := vec.FindStructField("y")
	require.True(t, ok)
	assert.Equal(t, uintptr(4), fy.Offset)

	_, ok = vec.FindStructField("z")
	assert.False(t, ok)
}

func TestRuntimeStructHashStableByModuleAndName(t *testing.T) {
	vec := types.NewRuntimeStruct("vector").ModuleName("math").Build()
	assert.Equal(t, types.HashNamed("math", "vector"), vec.TypeHash())
}

func TestNativeStructUsesHostLayout(t *testing.T) {
	type point struct{ X, Y int32 }
	pt := types.NewNativeStruct[point]("point").Build()
	assert.True(t, pt.IsNative())
	assert.Equal(t, types.LayoutOf[point](), pt.Layout())
	assert.Equal(t, types.HashOf[point](), pt.TypeHash())
}

func TestStructFinalizeRecursesFields(t *testing.T) {
	var finalized bool
	inner := types.NewNativeStruct[uint32]("u32").
		Finalize(func(unsafe.Pointer) { finalized = true }).
		Build()

	outer := types.NewRuntimeStruct("wrapper").
		Field(types.StructField{Name: "v", Type: inner}).
		Build()

	buf := make([]byte, outer.Layout().Size)
	outer.Finalize(unsafe.Pointer(&buf[0]))
	assert.True(t, finalized)
}

func TestEnumLayoutAndDefault(t *testing.T) {
	u32 := nativeU32()

	// enum Shape { Circle{r: u32}, Point } with discriminants 0, 1; default Point.
	shape := types.NewEnum("shape").
		ModuleName("math").
		Variant(types.EnumVariant{
			Discriminant: 0,
			Name:         "circle",
			Fields: []types.StructField{
				{Name: "r", Type: u32},
			},
		}).
		Variant(types.EnumVariant{Discriminant: 1, Name: "point"}).
		Default(1).
		Build()

	require.True(t, shape.IsEnum())
	// discriminant(1 byte, align 1) + u32 field(4 bytes, align 4) => padded to 8.
	assert.Equal(t, uintptr(8), shape.Layout().Size)
	assert.Equal(t, uintptr(4), shape.Layout().Align)

	def, ok := shape.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, "point", def.Name)

	circle, ok := shape.VariantByDiscriminant(0)
	require.True(t, ok)
	rField, ok := shape.FindEnumField(0, "r")
	require.True(t, ok)
	assert.Equal(t, uintptr(4), rField.Offset)
	assert.Equal(t, "circle", circle.Name)

	_, ok = shape.FindEnumField(1, "r")
	assert.False(t, ok, "point variant has no field r")
}

func TestEnumInitializeWritesDiscriminantAndFields(t *testing.T) {
	u32 := nativeU32()
	shape := types.NewEnum("shape").
		Variant(types.EnumVariant{Discriminant: 0, Name: "circle", Fields: []types.StructField{{Name: "r", Type: u32}}}).
		Default(0).
		Build()

	buf := make([]byte, shape.Layout().Size)
	ok := shape.Initialize(unsafe.Pointer(&buf[0]))
	require.True(t, ok)
	assert.Equal(t, uint8(0), buf[0])
}

func TestIsCompatible(t *testing.T) {
	a := types.NewRuntimeStruct("vector").ModuleName("math").Build()
	b := types.NewRuntimeStruct("vector").ModuleName("math").Build()
	c := types.NewRuntimeStruct("vector").ModuleName("physics").Build()

	assert.True(t, a.IsCompatible(b))
	assert.False(t, a.IsCompatible(c))
	assert.False(t, a.IsCompatible(nil))
}
