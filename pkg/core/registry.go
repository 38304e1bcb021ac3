package core

import (
	"sync"

	"github.com/intuicio-go/kernel/pkg/types"
)

// TypeHandle is a shared, reference-counted-in-spirit pointer to an
// immutable registered Type. Go's GC retains it for as long as any caller
// holds it, so no explicit refcounting is needed; identity (pointer
// equality) is what "the same handle" means.
type TypeHandle = *types.Type

// FunctionHandle is the Function analogue of TypeHandle.
type FunctionHandle = *Function

// FunctionQuery filters Registry.FindFunction lookups.
type FunctionQuery struct {
	Name       *string
	ModuleName *string
	OwnerType  *types.TypeHash
	Visibility *types.Visibility
}

func QueryFunctionNamed(name string) FunctionQuery {
	return FunctionQuery{Name: &name}
}

func (q FunctionQuery) isValid(f *Function) bool {
	if f == nil {
		return false
	}
	sig := f.Signature
	if q.Name != nil && sig.Name != *q.Name {
		return false
	}
	if q.ModuleName != nil && sig.ModuleName != *q.ModuleName {
		return false
	}
	if q.OwnerType != nil {
		if sig.OwningType == nil || sig.OwningType.TypeHash() != *q.OwnerType {
			return false
		}
	}
	if q.Visibility != nil && sig.Visibility < *q.Visibility {
		return false
	}
	return true
}

// Registry is the process-scoped catalog of runtime types and functions.
// It is safe for concurrent read access once setup (type/function
// registration) has quiesced — the single mutex matches spec.md §5's
// "immutable during execution, mutate only before running" contract; it
// is not a performance-tuned sharded structure like the teacher's name
// cache, because registration is a one-time setup cost, not a hot path.
type Registry struct {
	mu sync.RWMutex

	types     []TypeHandle
	typeIndex map[types.TypeHash]int // hash -> index into types, latest wins

	functions     []FunctionHandle
	functionIndex map[functionKey]int

	maxIndexCapacity int
}

type functionKey struct {
	module string
	name   string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		typeIndex:     make(map[types.TypeHash]int),
		functionIndex: make(map[functionKey]int),
	}
}

// WithMaxIndexCapacity pre-sizes the index tables, mirroring
// with_max_index_capacity() from spec.md §4.1.
func (r *Registry) WithMaxIndexCapacity(n int) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxIndexCapacity = n
	r.types = make([]TypeHandle, 0, n)
	r.functions = make([]FunctionHandle, 0, n)
	return r
}

// AddType registers t, returning its handle. Re-registering a type whose
// hash already exists replaces the prior handle, per spec.md §4.1 —
// outstanding TypeHandle values held by callers remain valid Go pointers
// but will no longer be found by hash lookup.
func (r *Registry) AddType(t *types.Type) TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := len(r.types)
	r.types = append(r.types, t)
	r.typeIndex[t.TypeHash()] = idx
	return t
}

// RemoveType drops h from the hash index, so FindType queries with a hash
// filter stop finding it. The underlying *types.Type remains valid for
// anyone still holding the pointer. h is not removed from the type list:
// Types() still returns it and a FindType query without a hash filter can
// still match it.
func (r *Registry) RemoveType(h TypeHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.typeIndex[h.TypeHash()]; ok && r.types[idx] == h {
		delete(r.typeIndex, h.TypeHash())
	}
}

// FindType returns the first registered type matching q.
func (r *Registry) FindType(q types.TypeQuery) (TypeHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if hash, ok := q.AsHash(); ok {
		if idx, ok := r.typeIndex[hash]; ok {
			return r.types[idx], true
		}
		return nil, false
	}
	for _, t := range r.types {
		if q.IsValid(t) {
			return t, true
		}
	}
	return nil, false
}

// Types iterates every currently registered type.
func (r *Registry) Types() []TypeHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TypeHandle, len(r.types))
	copy(out, r.types)
	return out
}

// AddFunction registers f, returning its handle.
func (r *Registry) AddFunction(f *Function) FunctionHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := functionKey{module: f.Signature.ModuleName, name: f.Signature.Name}
	idx := len(r.functions)
	r.functions = append(r.functions, f)
	r.functionIndex[key] = idx
	return f
}

// RemoveFunction drops h from the index.
func (r *Registry) RemoveFunction(h FunctionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := functionKey{module: h.Signature.ModuleName, name: h.Signature.Name}
	if idx, ok := r.functionIndex[key]; ok && r.functions[idx] == h {
		delete(r.functionIndex, key)
	}
}

// FindFunction returns the first registered function matching q.
func (r *Registry) FindFunction(q FunctionQuery) (FunctionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if q.Name != nil && q.ModuleName != nil && q.OwnerType == nil && q.Visibility == nil {
		if idx, ok := r.functionIndex[functionKey{module: *q.ModuleName, name: *q.Name}]; ok {
			return r.functions[idx], true
		}
		return nil, false
	}
	for _, f := range r.functions {
		if q.isValid(f) {
			return f, true
		}
	}
	return nil, false
}

// Functions iterates every currently registered function.
func (r *Registry) Functions() []FunctionHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FunctionHandle, len(r.functions))
	copy(out, r.functions)
	return out
}

// WithBasicTypes registers (), bool, the signed/unsigned integer widths,
// float32/float64, and string as native types, mirroring
// with_basic_types() from spec.md §4.1.
func (r *Registry) WithBasicTypes() *Registry {
	r.AddType(types.NewNativeStruct[struct{}]("unit").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[bool]("bool").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[int8]("i8").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[int16]("i16").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[int32]("i32").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[int64]("i64").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[uint8]("u8").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[uint16]("u16").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[uint32]("u32").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[uint64]("u64").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[float32]("f32").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[float64]("f64").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[rune]("char").ModuleName("core").Build())
	r.AddType(types.NewNativeStruct[string]("string").ModuleName("core").Build())
	return r
}
