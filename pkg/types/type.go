package types

import "unsafe"

// Kind discriminates a Type between a Struct and a repr(u8) tagged-union
// Enum.
type Kind int

const (
	KindStruct Kind = iota
	KindEnum
)

func (k Kind) String() string {
	if k == KindEnum {
		return "enum"
	}
	return "struct"
}

// Meta carries frontend-defined metadata attached to a type, field,
// variant, or function. The kernel never interprets its contents.
type Meta map[string]any

// InitializerFunc writes a valid default image into freshly allocated,
// zeroed memory of the type's layout.
type InitializerFunc func(memory unsafe.Pointer)

// FinalizerFunc runs type-specific cleanup before the memory backing a
// value is released (host finalizer for native types; per-field/per-active-
// variant composition for runtime types).
type FinalizerFunc func(memory unsafe.Pointer)

// StructField describes one field of a Struct type, or one field within
// an EnumVariant.
type StructField struct {
	Name       string
	Visibility Visibility
	Type       *Type
	Offset     uintptr
	Meta       Meta
}

// EnumVariant describes one variant of a tagged-union Enum. Its Fields are
// laid out after the discriminant byte with C-like alignment padding,
// per-variant (variants may overlap in memory; only one is active at a
// time, selected by the discriminant byte at offset 0).
type EnumVariant struct {
	Discriminant uint8
	Name         string
	Fields       []StructField
	Meta         Meta
}

// Type is either a Struct (ordered fields, C-like padded layout) or an
// Enum (tagged union, discriminant byte at offset 0). A Type is immutable
// and reference-shared once built; *Type serves as the TypeHandle spec.md
// describes.
type Type struct {
	kind       Kind
	name       string
	moduleName string
	visibility Visibility
	hash       TypeHash
	layout     Layout
	native     bool

	fields []StructField // struct-only

	variants       []EnumVariant // enum-only
	defaultVariant int           // enum-only: index into variants

	initialize InitializerFunc
	finalize   FinalizerFunc
	meta       *Meta
}

func (t *Type) IsStruct() bool { return t.kind == KindStruct }
func (t *Type) IsEnum() bool   { return t.kind == KindEnum }
func (t *Type) Kind() Kind     { return t.kind }

func (t *Type) Name() string             { return t.name }
func (t *Type) ModuleName() string       { return t.moduleName }
func (t *Type) Visibility() Visibility   { return t.visibility }
func (t *Type) TypeHash() TypeHash       { return t.hash }
func (t *Type) TypeName() string        { return t.name }
func (t *Type) Layout() Layout          { return t.layout }
func (t *Type) IsNative() bool          { return t.native }
func (t *Type) IsRuntime() bool         { return !t.native }
func (t *Type) CanInitialize() bool     { return t.initialize != nil }
func (t *Type) Meta() (Meta, bool) {
	if t.meta == nil {
		return nil, false
	}
	return *t.meta, true
}

// StructFields returns the ordered field list of a Struct type, or nil
// for an Enum.
func (t *Type) StructFields() []StructField {
	if t.kind != KindStruct {
		return nil
	}
	return t.fields
}

// EnumVariants returns the variant list of an Enum type, or nil for a
// Struct.
func (t *Type) EnumVariants() []EnumVariant {
	if t.kind != KindEnum {
		return nil
	}
	return t.variants
}

// DefaultVariant returns the enum's default variant, if any.
func (t *Type) DefaultVariant() (EnumVariant, bool) {
	if t.kind != KindEnum || len(t.variants) == 0 {
		return EnumVariant{}, false
	}
	return t.variants[t.defaultVariant], true
}

// IsCompatible reports whether two types share the same identity.
func (t *Type) IsCompatible(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	return t.hash == other.hash
}

// Initialize runs the type's initializer over freshly allocated memory.
// Callers must ensure memory is at least t.layout.Size bytes.
func (t *Type) Initialize(memory unsafe.Pointer) bool {
	if t.initialize == nil {
		return false
	}
	t.initialize(memory)
	return true
}

// Finalize runs the type's finalizer over memory about to be released.
func (t *Type) Finalize(memory unsafe.Pointer) {
	if t.finalize != nil {
		t.finalize(memory)
	}
}

// FindStructField looks up a struct field by name.
func (t *Type) FindStructField(name string) (*StructField, bool) {
	if t.kind != KindStruct {
		return nil, false
	}
	for i := range t.fields {
		if t.fields[i].Name == name {
			return &t.fields[i], true
		}
	}
	return nil, false
}

// VariantByDiscriminant finds the enum variant matching a discriminant
// byte, used when resolving the active variant from an Object's memory.
func (t *Type) VariantByDiscriminant(discriminant uint8) (*EnumVariant, bool) {
	if t.kind != KindEnum {
		return nil, false
	}
	for i := range t.variants {
		if t.variants[i].Discriminant == discriminant {
			return &t.variants[i], true
		}
	}
	return nil, false
}

// FindEnumField looks up a field by name scoped to the variant selected by
// discriminant — enum field lookup is always variant-scoped per spec.md §4.2.
func (t *Type) FindEnumField(discriminant uint8, name string) (*StructField, bool) {
	variant, ok := t.VariantByDiscriminant(discriminant)
	if !ok {
		return nil, false
	}
	for i := range variant.Fields {
		if variant.Fields[i].Name == name {
			return &variant.Fields[i], true
		}
	}
	return nil, false
}
