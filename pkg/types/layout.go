package types

import "unsafe"

// Layout is the {size, alignment} pair fixed for a type after registration.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf computes the native Go layout of T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: uintptr(unsafe.Alignof(zero))}
}

// AlignUp rounds size up to the next multiple of align. align must be a
// power of two; align == 0 is treated as "no alignment requirement".
func AlignUp(size, align uintptr) uintptr {
	if align == 0 {
		return size
	}
	return (size + align - 1) &^ (align - 1)
}

// Extend appends a field of layout `field` after the bytes already
// accumulated in l (C-like padding rules), returning the field's byte
// offset and the updated composite layout. The composite's own alignment
// becomes the widest alignment seen so far.
func (l Layout) Extend(field Layout) (offset uintptr, composite Layout) {
	offset = AlignUp(l.Size, field.Align)
	align := l.Align
	if field.Align > align {
		align = field.Align
	}
	return offset, Layout{Size: offset + field.Size, Align: align}
}

// Pad returns l with its size rounded up to its own alignment, as a
// composite layout must be before it can be repeated in an array or
// embedded as a field of a larger composite.
func (l Layout) Pad() Layout {
	return Layout{Size: AlignUp(l.Size, l.Align), Align: l.Align}
}

// Max returns the layout that can hold either l or other, used to size a
// tagged union's largest variant.
func (l Layout) Max(other Layout) Layout {
	size := l.Size
	if other.Size > size {
		size = other.Size
	}
	align := l.Align
	if other.Align > align {
		align = other.Align
	}
	return Layout{Size: size, Align: align}
}
