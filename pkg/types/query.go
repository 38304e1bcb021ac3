package types

// TypeQuery is an optional-filter predicate the registry evaluates against
// its registered types. A nil filter field means "don't care" (always
// matches on that dimension).
type TypeQuery struct {
	Name       *string
	ModuleName *string
	Hash       *TypeHash
	Kind       *Kind
	Visibility *Visibility
}

// QueryOf builds a TypeQuery pinned to T's native TypeHash — the
// equivalent of Rust's TypeQuery::of::<T>().
func QueryOf[T any]() TypeQuery {
	h := HashOf[T]()
	return TypeQuery{Hash: &h}
}

// QueryNamed builds a TypeQuery matching by unqualified name.
func QueryNamed(name string) TypeQuery {
	return TypeQuery{Name: &name}
}

// QueryHash builds a TypeQuery pinned to an already-known TypeHash, the
// fast path a Registry lookup takes once a handle has been resolved once.
func QueryHash(hash TypeHash) TypeQuery {
	return TypeQuery{Hash: &hash}
}

// IsValid reports whether t satisfies every set filter.
func (q TypeQuery) IsValid(t *Type) bool {
	if t == nil {
		return false
	}
	if q.Name != nil && t.name != *q.Name {
		return false
	}
	if q.ModuleName != nil && t.moduleName != *q.ModuleName {
		return false
	}
	if q.Hash != nil && t.hash != *q.Hash {
		return false
	}
	if q.Kind != nil && t.kind != *q.Kind {
		return false
	}
	if q.Visibility != nil && t.visibility < *q.Visibility {
		return false
	}
	return true
}

// AsHash returns the query's pinned hash, if it is precise enough to
// address a single type directly without a registry scan.
func (q TypeQuery) AsHash() (TypeHash, bool) {
	if q.Hash != nil {
		return *q.Hash, true
	}
	return 0, false
}

// StructFieldQuery filters StructField lookups within a single Struct
// type, e.g. when a frontend resolves a field access expression by name
// and required visibility.
type StructFieldQuery struct {
	Name       *string
	Visibility *Visibility
}

func QueryField(name string) StructFieldQuery {
	return StructFieldQuery{Name: &name}
}

func (q StructFieldQuery) IsValid(f *StructField) bool {
	if f == nil {
		return false
	}
	if q.Name != nil && f.Name != *q.Name {
		return false
	}
	if q.Visibility != nil && f.Visibility < *q.Visibility {
		return false
	}
	return true
}

// EnumVariantQuery filters EnumVariant lookups within a single Enum type.
type EnumVariantQuery struct {
	Name         *string
	Discriminant *uint8
}

func QueryVariant(name string) EnumVariantQuery {
	return EnumVariantQuery{Name: &name}
}

func QueryVariantDiscriminant(d uint8) EnumVariantQuery {
	return EnumVariantQuery{Discriminant: &d}
}

func (q EnumVariantQuery) IsValid(v *EnumVariant) bool {
	if v == nil {
		return false
	}
	if q.Name != nil && v.Name != *q.Name {
		return false
	}
	if q.Discriminant != nil && v.Discriminant != *q.Discriminant {
		return false
	}
	return true
}

// FindVariant scans t's variants for the first match against q. Enum-only;
// returns false for a Struct type.
func (t *Type) FindVariant(q EnumVariantQuery) (*EnumVariant, bool) {
	if t.kind != KindEnum {
		return nil, false
	}
	for i := range t.variants {
		if q.IsValid(&t.variants[i]) {
			return &t.variants[i], true
		}
	}
	return nil, false
}

// FindField scans t's struct fields for the first match against q.
// Struct-only; returns false for an Enum type (use FindEnumField for
// variant-scoped enum field lookup).
func (t *Type) FindField(q StructFieldQuery) (*StructField, bool) {
	if t.kind != KindStruct {
		return nil, false
	}
	for i := range t.fields {
		if q.IsValid(&t.fields[i]) {
			return &t.fields[i], true
		}
	}
	return nil, false
}
