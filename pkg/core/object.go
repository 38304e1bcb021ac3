package core

import (
	"fmt"
	"reflect"
	"runtime"
	"unsafe"

	"github.com/intuicio-go/kernel/pkg/types"
)

// Object is a heap-allocated, type-erased value: a TypeHandle plus a raw
// memory block sized to the type's layout. It is the kernel's raw-memory
// value container, used where field offsets or an FFI byte image matter;
// operand stack entries and registers hold boxed Go values instead (see
// stackEntry), which may themselves be *Object.
//
// Go has no deterministic destructors, so ownership is tracked explicitly
// via dropFlag and released by calling Close, backstopped by
// runtime.AddCleanup for callers that forget — the same explicit-close
// discipline the teacher uses for its Hive and BumpAllocator resources.
type Object struct {
	typ      TypeHandle
	memory   unsafe.Pointer
	dropFlag bool
	cleanup  runtime.Cleanup
}

// NewObject allocates layout.size_bytes for t and runs its initializer.
// Returns ErrCannotInitialize if t declares none.
func NewObject(t TypeHandle) (*Object, error) {
	if !t.CanInitialize() {
		return nil, types.ErrCannotInitialize
	}
	mem := allocate(t.Layout())
	t.Initialize(mem)
	return wrapObject(t, mem, true), nil
}

// NewUninitializedObject allocates layout.size_bytes for t without running
// its initializer. The caller must write a valid image before any read;
// violating this is a host contract violation with no runtime check, per
// spec.md §4.2.
func NewUninitializedObject(t TypeHandle) *Object {
	mem := allocate(t.Layout())
	return wrapObject(t, mem, true)
}

// NewObjectWithValue allocates for t and bitwise-copies v in, iff t's hash
// matches T's native hash.
func NewObjectWithValue[T any](t TypeHandle, v T) (*Object, error) {
	if t.TypeHash() != types.HashOf[T]() {
		return nil, &types.Error{Kind: types.ErrKindType, Msg: fmt.Sprintf(
			"core: type %q has no native representation matching Go kind %s", t.Name(), kindOf[T]())}
	}
	mem := allocate(t.Layout())
	*(*T)(mem) = v
	return wrapObject(t, mem, true), nil
}

// NewObjectFromBytes allocates for t and copies bytes in, iff bytes is
// exactly layout.size_bytes long.
func NewObjectFromBytes(t TypeHandle, bytes []byte) (*Object, error) {
	if uintptr(len(bytes)) != t.Layout().Size {
		return nil, &types.Error{Kind: types.ErrKindType, Msg: "core: byte image size does not match type layout"}
	}
	mem := allocate(t.Layout())
	copy(unsafe.Slice((*byte)(mem), len(bytes)), bytes)
	return wrapObject(t, mem, true), nil
}

func allocate(l types.Layout) unsafe.Pointer {
	if l.Size == 0 {
		return unsafe.Pointer(new(byte))
	}
	buf := make([]byte, l.Size)
	return unsafe.Pointer(&buf[0])
}

func wrapObject(t TypeHandle, mem unsafe.Pointer, owns bool) *Object {
	o := &Object{typ: t, memory: mem, dropFlag: owns}
	if owns {
		o.cleanup = runtime.AddCleanup(o, func(args cleanupArgs) {
			args.t.Finalize(args.mem)
		}, cleanupArgs{t: t, mem: mem})
	}
	return o
}

// cleanupArgs is the runtime.AddCleanup payload: it must not reference the
// Object itself, only the pieces needed to finalize its memory, or the
// cleanup would keep the Object reachable forever.
type cleanupArgs struct {
	t   TypeHandle
	mem unsafe.Pointer
}

// Type returns the Object's registered type.
func (o *Object) Type() TypeHandle { return o.typ }

// Memory returns the Object's full raw memory as a byte slice. Callers
// must respect field layout; the kernel performs no bounds reinterpretation.
func (o *Object) Memory() []byte {
	if o.typ.Layout().Size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(o.memory), o.typ.Layout().Size)
}

// Pointer returns the raw memory pointer, for FFI marshaling and field
// offset arithmetic.
func (o *Object) Pointer() unsafe.Pointer { return o.memory }

// ConsumeObject extracts T by bitwise move iff hashes match, disabling
// drop on o (the caller now owns the value and any non-trivial finalizer
// responsibility for it).
func ConsumeObject[T any](o *Object) (T, bool) {
	var zero T
	if o.typ.TypeHash() != types.HashOf[T]() {
		return zero, false
	}
	v := *(*T)(o.memory)
	o.dropFlag = false
	o.cleanup.Stop()
	return v, true
}

// ReadField resolves name to a struct field (or, for enums, a field of the
// variant selected by the discriminant byte) and reads it as T, iff the
// field's declared type hash matches T.
func ReadField[T any](o *Object, name string) (T, bool) {
	var zero T
	f, ok := resolveField(o, name)
	if !ok || f.Type.TypeHash() != types.HashOf[T]() {
		return zero, false
	}
	return *(*T)(unsafe.Add(o.memory, f.Offset)), true
}

// WriteField resolves name the same way ReadField does and writes v in
// place.
func WriteField[T any](o *Object, name string, v T) bool {
	f, ok := resolveField(o, name)
	if !ok || f.Type.TypeHash() != types.HashOf[T]() {
		return false
	}
	*(*T)(unsafe.Add(o.memory, f.Offset)) = v
	return true
}

func resolveField(o *Object, name string) (*types.StructField, bool) {
	if o.typ.IsStruct() {
		return o.typ.FindStructField(name)
	}
	discriminant := *(*uint8)(o.memory)
	return o.typ.FindEnumField(discriminant, name)
}

// Close runs the type's finalizer (if the Object owns its memory) and
// releases the backstop cleanup. Close is idempotent.
func (o *Object) Close() {
	if !o.dropFlag {
		return
	}
	o.dropFlag = false
	o.cleanup.Stop()
	o.typ.Finalize(o.memory)
}

// kindOf reports T's Go reflect.Kind, for type-mismatch error messages that
// need to name what was actually passed in alongside the kernel's own
// registered type name.
func kindOf[T any]() reflect.Kind {
	return reflect.TypeFor[T]().Kind()
}
