package types

import "unsafe"

// RuntimeStructBuilder builds a Struct type whose layout is computed by
// extending each field in declaration order with C-like alignment padding
// — the "Runtime" origin from spec.md §3 (no host Go type backs it; a
// frontend assembles it field by field).
type RuntimeStructBuilder struct {
	name       string
	moduleName string
	visibility Visibility
	fields     []StructField
	meta       *Meta
}

// NewRuntimeStruct starts building a runtime Struct named name.
func NewRuntimeStruct(name string) *RuntimeStructBuilder {
	return &RuntimeStructBuilder{name: name, visibility: VisibilityPublic}
}

func (b *RuntimeStructBuilder) ModuleName(name string) *RuntimeStructBuilder {
	b.moduleName = name
	return b
}

func (b *RuntimeStructBuilder) Visibility(v Visibility) *RuntimeStructBuilder {
	b.visibility = v
	return b
}

func (b *RuntimeStructBuilder) WithMeta(m Meta) *RuntimeStructBuilder {
	b.meta = &m
	return b
}

// Field appends a field; its Offset is computed by Build, overriding
// anything the caller set.
func (b *RuntimeStructBuilder) Field(field StructField) *RuntimeStructBuilder {
	b.fields = append(b.fields, field)
	return b
}

// Build computes field offsets and the composite layout, then returns the
// immutable Struct Type. Initializer/finalizer default to per-field
// composition: initialize runs each field type's initializer at its offset
// (fields whose type declares none keep the zeroed bytes of a fresh
// allocation) and finalize recursively finalizes each field's type at its
// offset.
func (b *RuntimeStructBuilder) Build() *Type {
	var layout Layout
	fields := make([]StructField, len(b.fields))
	for i, f := range b.fields {
		offset, next := layout.Extend(f.Type.Layout())
		f.Offset = offset
		fields[i] = f
		layout = next
	}
	layout = layout.Pad()

	t := &Type{
		kind:       KindStruct,
		name:       b.name,
		moduleName: b.moduleName,
		visibility: b.visibility,
		layout:     layout,
		native:     false,
		fields:     fields,
		meta:       b.meta,
	}
	t.hash = HashNamed(b.moduleName, b.name)
	t.initialize = func(memory unsafe.Pointer) {
		for _, f := range fields {
			f.Type.Initialize(unsafe.Add(memory, f.Offset))
		}
	}
	t.finalize = func(memory unsafe.Pointer) {
		for _, f := range fields {
			f.Type.Finalize(unsafe.Add(memory, f.Offset))
		}
	}
	return t
}

// NativeStructBuilder wraps a native Go type T, keeping size/align/init/
// finalize sourced from the host and using declared fields (if any) only
// for reflection — the "Native" origin from spec.md §3.
type NativeStructBuilder struct {
	name       string
	moduleName string
	visibility Visibility
	layout     Layout
	hash       TypeHash
	initialize InitializerFunc
	finalize   FinalizerFunc
	fields     []StructField
	meta       *Meta
}

// NewNativeStruct starts building a native Struct type for T, deriving its
// layout and TypeHash from Go's own type system.
func NewNativeStruct[T any](name string) *NativeStructBuilder {
	return &NativeStructBuilder{
		name:       name,
		visibility: VisibilityPublic,
		layout:     LayoutOf[T](),
		hash:       HashOf[T](),
	}
}

func (b *NativeStructBuilder) ModuleName(name string) *NativeStructBuilder {
	b.moduleName = name
	return b
}

func (b *NativeStructBuilder) Visibility(v Visibility) *NativeStructBuilder {
	b.visibility = v
	return b
}

func (b *NativeStructBuilder) Initialize(f InitializerFunc) *NativeStructBuilder {
	b.initialize = f
	return b
}

func (b *NativeStructBuilder) Finalize(f FinalizerFunc) *NativeStructBuilder {
	b.finalize = f
	return b
}

func (b *NativeStructBuilder) Field(field StructField) *NativeStructBuilder {
	b.fields = append(b.fields, field)
	return b
}

func (b *NativeStructBuilder) WithMeta(m Meta) *NativeStructBuilder {
	b.meta = &m
	return b
}

func (b *NativeStructBuilder) Build() *Type {
	return &Type{
		kind:       KindStruct,
		name:       b.name,
		moduleName: b.moduleName,
		visibility: b.visibility,
		hash:       b.hash,
		layout:     b.layout,
		native:     true,
		fields:     b.fields,
		initialize: b.initialize,
		finalize:   b.finalize,
		meta:       b.meta,
	}
}
