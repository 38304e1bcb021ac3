package ffi

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/types"
)

// Marshal encodes one Context stack value into its C-ABI byte image,
// keyed by hash the same way Object's layout is keyed: fixed-width
// little-endian for scalar natives, a length-prefixed UTF-8 buffer for
// string, and an error for anything else (structs/enums cross the FFI
// boundary through Object.Memory() directly; Marshal only covers the
// scalar/string fast path spec.md §6 calls out).
func Marshal(hash types.TypeHash, value any) ([]byte, error) {
	switch hash {
	case types.HashOf[bool]():
		v := value.(bool)
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case types.HashOf[int8]():
		return []byte{byte(value.(int8))}, nil
	case types.HashOf[uint8]():
		return []byte{value.(uint8)}, nil
	case types.HashOf[int16]():
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(value.(int16)))
		return buf, nil
	case types.HashOf[uint16]():
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, value.(uint16))
		return buf, nil
	case types.HashOf[int32]():
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(value.(int32)))
		return buf, nil
	case types.HashOf[uint32]():
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, value.(uint32))
		return buf, nil
	case types.HashOf[int64]():
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(value.(int64)))
		return buf, nil
	case types.HashOf[uint64]():
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, value.(uint64))
		return buf, nil
	case types.HashOf[float32]():
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(value.(float32)))
		return buf, nil
	case types.HashOf[float64]():
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(value.(float64)))
		return buf, nil
	case types.HashOf[string]():
		s := value.(string)
		buf := make([]byte, 4+len(s))
		binary.LittleEndian.PutUint32(buf, uint32(len(s)))
		copy(buf[4:], s)
		return buf, nil
	default:
		return nil, fmt.Errorf("ffi: marshal has no scalar encoding for hash %x", uint64(hash))
	}
}

// Unmarshal is Marshal's inverse: it decodes bytes into a boxed value
// tagged with hash, ready to push onto a Context's DataStack.
func Unmarshal(hash types.TypeHash, bytes []byte) (any, error) {
	switch hash {
	case types.HashOf[bool]():
		return len(bytes) > 0 && bytes[0] != 0, nil
	case types.HashOf[int8]():
		return int8(bytes[0]), nil
	case types.HashOf[uint8]():
		return bytes[0], nil
	case types.HashOf[int16]():
		return int16(binary.LittleEndian.Uint16(bytes)), nil
	case types.HashOf[uint16]():
		return binary.LittleEndian.Uint16(bytes), nil
	case types.HashOf[int32]():
		return int32(binary.LittleEndian.Uint32(bytes)), nil
	case types.HashOf[uint32]():
		return binary.LittleEndian.Uint32(bytes), nil
	case types.HashOf[int64]():
		return int64(binary.LittleEndian.Uint64(bytes)), nil
	case types.HashOf[uint64]():
		return binary.LittleEndian.Uint64(bytes), nil
	case types.HashOf[float32]():
		return math.Float32frombits(binary.LittleEndian.Uint32(bytes)), nil
	case types.HashOf[float64]():
		return math.Float64frombits(binary.LittleEndian.Uint64(bytes)), nil
	case types.HashOf[string]():
		n := binary.LittleEndian.Uint32(bytes)
		return string(bytes[4 : 4+n]), nil
	default:
		return nil, fmt.Errorf("ffi: unmarshal has no scalar decoding for hash %x", uint64(hash))
	}
}

// PopMarshaled pops the Context's top stack value and marshals it in one
// step, for a CallFunction boundary that crosses into FFI space.
func PopMarshaled(ctx *core.Context, hash types.TypeHash) ([]byte, error) {
	h, value, ok := ctx.Stack.PopRaw()
	if !ok {
		return nil, fmt.Errorf("ffi: pop_marshaled on an empty stack")
	}
	if h != hash {
		return nil, fmt.Errorf("ffi: pop_marshaled type mismatch")
	}
	return Marshal(hash, value)
}

// PushUnmarshaled decodes bytes per hash and pushes the result onto ctx.
func PushUnmarshaled(ctx *core.Context, hash types.TypeHash, bytes []byte) error {
	v, err := Unmarshal(hash, bytes)
	if err != nil {
		return err
	}
	ctx.Stack.PushRaw(hash, v)
	return nil
}
