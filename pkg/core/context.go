package core

import "github.com/intuicio-go/kernel/pkg/types"

// closer is implemented by boxed values (typically *Object) that own a
// resource needing explicit release when a stack entry or register slot
// is finalized instead of moved out.
type closer interface{ Close() }

func finalizeValue(v any) {
	if c, ok := v.(closer); ok {
		c.Close()
	}
}

// stackEntry is one DataStack slot: a boxed value tagged with its
// TypeHash. Object (§4.2) exposes literal raw memory because FFI and
// field-offset arithmetic need it; the stack's contract (§4.4) only
// requires correct typed push/pop round-tripping, so entries are boxed
// `any` rather than hand-packed byte images — the idiomatic Go
// representation for a value of statically unknown type. Finalization on
// drop is delegated to the closer interface rather than a stored
// FinalizerFunc, since the value is already a live Go value (not a raw
// byte image) by the time it reaches the stack.
type stackEntry struct {
	hash  types.TypeHash
	value any
}

// DataStack is the operand stack: push/pop of typed values in LIFO order.
type DataStack struct {
	entries []stackEntry
}

// Position returns the current stack depth, used to assert balance at
// call boundaries (spec.md §4.4).
func (s *DataStack) Position() int { return len(s.entries) }

// PushRaw pushes a pre-boxed value, used by ScriptOperation.Expression and
// by FFI marshaling where the hash is known dynamically rather than via a
// Go type parameter.
func (s *DataStack) PushRaw(hash types.TypeHash, value any) {
	s.entries = append(s.entries, stackEntry{hash: hash, value: value})
}

// PopRaw pops the top entry without running its finalizer, returning the
// hash and boxed value. The caller takes over ownership.
func (s *DataStack) PopRaw() (types.TypeHash, any, bool) {
	if len(s.entries) == 0 {
		return 0, nil, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top.hash, top.value, true
}

// DropTop pops and finalizes the top entry, used when a script discards a
// value instead of moving it somewhere.
func (s *DataStack) DropTop() bool {
	_, value, ok := s.PopRaw()
	if !ok {
		return false
	}
	finalizeValue(value)
	return true
}

// Peek returns the top entry's hash without popping, or false if empty.
func (s *DataStack) Peek() (types.TypeHash, bool) {
	if len(s.entries) == 0 {
		return 0, false
	}
	return s.entries[len(s.entries)-1].hash, true
}

// PushValue pushes v tagged with T's native TypeHash.
func PushValue[T any](ctx *Context, v T) {
	ctx.Stack.PushRaw(types.HashOf[T](), v)
}

// PopValue pops the top entry iff its hash matches T, returning the typed
// value. A mismatched type leaves the stack unchanged and returns false,
// per spec.md §8's pop-mismatch property.
func PopValue[T any](ctx *Context) (T, bool) {
	var zero T
	if len(ctx.Stack.entries) == 0 {
		return zero, false
	}
	top := ctx.Stack.entries[len(ctx.Stack.entries)-1]
	if top.hash != types.HashOf[T]() {
		return zero, false
	}
	ctx.Stack.entries = ctx.Stack.entries[:len(ctx.Stack.entries)-1]
	v, _ := top.value.(T)
	return v, true
}

// registerSlot is one RegisterFile slot. expected is set by DefineRegister
// and survives a move-out, so a later PopToRegister can still enforce
// that the incoming value's type matches what the slot was declared for.
type registerSlot struct {
	occupied bool
	expected types.TypeHash
	hash     types.TypeHash
	value    any
}

// RegisterFile is the index-addressed slot table backing a Context's
// registers. Indices passed to its methods are frame-relative; Context
// translates them through the active frame base (spec.md §4.4).
type RegisterFile struct {
	slots []registerSlot
}

// Position returns the total slot count (the register "top"), used to
// assert balance at call boundaries.
func (r *RegisterFile) Position() int { return len(r.slots) }

// define allocates a new slot holding an empty (uninitialized) register
// expecting values of hash, and returns its absolute index.
func (r *RegisterFile) define(hash types.TypeHash) int {
	r.slots = append(r.slots, registerSlot{expected: hash})
	return len(r.slots) - 1
}

func (r *RegisterFile) free(absolute int) {
	if absolute < 0 || absolute >= len(r.slots) {
		panic("core: register index out of range")
	}
	slot := &r.slots[absolute]
	if slot.occupied {
		finalizeValue(slot.value)
	}
	*slot = registerSlot{}
}

// Context is the per-call execution state: operand stack, register file,
// nested-frame bookkeeping, and a custom slot map for embedder extensions.
type Context struct {
	Stack     DataStack
	Registers RegisterFile
	frames    []int
	custom    map[string]any
}

// NewContext creates an empty Context with a single implicit top-level
// frame based at register index 0.
func NewContext() *Context {
	return &Context{frames: []int{0}, custom: make(map[string]any)}
}

func (c *Context) frameBase() int { return c.frames[len(c.frames)-1] }

// AbsoluteRegisterIndex translates a frame-relative index to an absolute
// RegisterFile slot index.
func (c *Context) AbsoluteRegisterIndex(relative int) int { return c.frameBase() + relative }

// StoreRegisters pushes the current register top as a new frame base,
// per spec.md §4.4; subsequent register indices are relative to it.
func (c *Context) StoreRegisters() {
	c.frames = append(c.frames, c.Registers.Position())
}

// RestoreRegisters finalizes every register allocated since the most
// recently stored frame and pops that frame.
func (c *Context) RestoreRegisters() {
	if len(c.frames) <= 1 {
		panic("core: restore_registers called with no matching store_registers")
	}
	base := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	for i := len(c.Registers.slots) - 1; i >= base; i-- {
		slot := &c.Registers.slots[i]
		if slot.occupied {
			finalizeValue(slot.value)
		}
	}
	c.Registers.slots = c.Registers.slots[:base]
}

// DefineRegister allocates a register for t in the current frame and
// returns its frame-relative index.
func (c *Context) DefineRegister(t TypeHandle) int {
	abs := c.Registers.define(t.TypeHash())
	return abs - c.frameBase()
}

// DropRegister finalizes and frees the register at frame-relative index i.
func (c *Context) DropRegister(i int) {
	c.Registers.free(c.AbsoluteRegisterIndex(i))
}

// PushFromRegisterValue copies register i's contents onto the stack,
// transferring finalizer responsibility to the stack entry; the register
// slot is left marked unoccupied (its bytes are "logically uninitialized
// until the next PopToRegister/DefineRegister", the Open Question
// resolution recorded in DESIGN.md).
func (c *Context) PushFromRegisterValue(i int) {
	abs := c.AbsoluteRegisterIndex(i)
	if abs < 0 || abs >= len(c.Registers.slots) {
		panic("core: register index out of range")
	}
	slot := &c.Registers.slots[abs]
	if !slot.occupied {
		panic("core: push_from_register on an empty register (double move)")
	}
	c.Stack.PushRaw(slot.hash, slot.value)
	*slot = registerSlot{expected: slot.expected}
}

// PopToRegisterValue pops the stack top into register i. Panics if the
// popped value's type does not match what DefineRegister declared for
// this slot — a host/frontend contract violation, per spec.md §4.7.
func (c *Context) PopToRegisterValue(i int) {
	hash, value, ok := c.Stack.PopRaw()
	if !ok {
		panic("core: pop_to_register on an empty stack")
	}
	abs := c.AbsoluteRegisterIndex(i)
	if abs < 0 || abs >= len(c.Registers.slots) {
		panic("core: register index out of range")
	}
	expected := c.Registers.slots[abs].expected
	if expected != 0 && expected != hash {
		panic("core: pop_to_register type mismatch")
	}
	c.Registers.slots[abs] = registerSlot{occupied: true, expected: expected, hash: hash, value: value}
}

// MoveRegisterValue transfers register `from`'s contents into register
// `to`, leaving `from` unoccupied.
func (c *Context) MoveRegisterValue(from, to int) {
	absFrom := c.AbsoluteRegisterIndex(from)
	absTo := c.AbsoluteRegisterIndex(to)
	if absFrom < 0 || absFrom >= len(c.Registers.slots) || absTo < 0 || absTo >= len(c.Registers.slots) {
		panic("core: register index out of range")
	}
	c.Registers.slots[absTo] = c.Registers.slots[absFrom]
	c.Registers.slots[absFrom] = registerSlot{}
}

// RegisterHash reports the TypeHash currently occupying register i,
// without exposing the boxed value itself.
func (c *Context) RegisterHash(i int) (types.TypeHash, bool) {
	abs := c.AbsoluteRegisterIndex(i)
	if abs < 0 || abs >= len(c.Registers.slots) || !c.Registers.slots[abs].occupied {
		return 0, false
	}
	return c.Registers.slots[abs].hash, true
}

// SetCustom stores a type-erased value under name in the Context's custom
// slot map, spec.md §3's `custom: map<String, type-erased handle>`.
func (c *Context) SetCustom(name string, value any) { c.custom[name] = value }

// Custom retrieves a previously stored custom value.
func (c *Context) Custom(name string) (any, bool) {
	v, ok := c.custom[name]
	return v, ok
}
