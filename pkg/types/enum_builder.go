package types

import "unsafe"

// EnumBuilder builds a tagged-union Enum type: a 1-byte discriminant
// followed by the active variant's fields, sized to the widest variant
// (spec.md §3's Enum memory model).
type EnumBuilder struct {
	name           string
	moduleName     string
	visibility     Visibility
	variants       []EnumVariant
	defaultVariant int
	meta           *Meta
}

// NewEnum starts building an Enum named name.
func NewEnum(name string) *EnumBuilder {
	return &EnumBuilder{name: name, visibility: VisibilityPublic}
}

func (b *EnumBuilder) ModuleName(name string) *EnumBuilder {
	b.moduleName = name
	return b
}

func (b *EnumBuilder) Visibility(v Visibility) *EnumBuilder {
	b.visibility = v
	return b
}

func (b *EnumBuilder) WithMeta(m Meta) *EnumBuilder {
	b.meta = &m
	return b
}

// Variant appends a variant whose fields are laid out after the
// discriminant byte, each aligned to its own type's alignment; field
// offsets are computed by Build, overriding anything the caller set.
func (b *EnumBuilder) Variant(variant EnumVariant) *EnumBuilder {
	b.variants = append(b.variants, variant)
	return b
}

// Default selects, by discriminant, the variant a freshly initialized Enum
// value starts in.
func (b *EnumBuilder) Default(discriminant uint8) *EnumBuilder {
	for i := range b.variants {
		if b.variants[i].Discriminant == discriminant {
			b.defaultVariant = i
			break
		}
	}
	return b
}

// Build computes each variant's field offsets (starting past the
// discriminant byte) and the union's overall layout (the widest variant,
// padded, with the discriminant's own alignment folded in), then returns
// the immutable Enum Type. Initialize writes the default variant's
// discriminant and recursively initializes its fields; Finalize finalizes
// whichever variant the discriminant byte selects at the time of release.
func (b *EnumBuilder) Build() *Type {
	const discriminantSize = 1

	variants := make([]EnumVariant, len(b.variants))
	widest := Layout{Size: discriminantSize, Align: 1}
	for vi, v := range b.variants {
		body := Layout{Size: discriminantSize, Align: 1}
		fields := make([]StructField, len(v.Fields))
		for fi, f := range v.Fields {
			offset, next := body.Extend(f.Type.Layout())
			f.Offset = offset
			fields[fi] = f
			body = next
		}
		body = body.Pad()
		variants[vi] = EnumVariant{
			Discriminant: v.Discriminant,
			Name:         v.Name,
			Fields:       fields,
			Meta:         v.Meta,
		}
		widest = widest.Max(body)
	}
	layout := widest.Pad()

	t := &Type{
		kind:           KindEnum,
		name:           b.name,
		moduleName:     b.moduleName,
		visibility:     b.visibility,
		layout:         layout,
		native:         false,
		variants:       variants,
		defaultVariant: b.defaultVariant,
		meta:           b.meta,
	}
	t.hash = HashNamed(b.moduleName, b.name)

	t.initialize = func(memory unsafe.Pointer) {
		if len(variants) == 0 {
			return
		}
		variant := variants[t.defaultVariant]
		*(*uint8)(memory) = variant.Discriminant
		for _, f := range variant.Fields {
			f.Type.Initialize(unsafe.Add(memory, f.Offset))
		}
	}
	t.finalize = func(memory unsafe.Pointer) {
		discriminant := *(*uint8)(memory)
		variant, ok := t.VariantByDiscriminant(discriminant)
		if !ok {
			return
		}
		for _, f := range variant.Fields {
			f.Type.Finalize(unsafe.Add(memory, f.Offset))
		}
	}
	return t
}
