package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intuicio-go/kernel/pkg/types"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uintptr(0), types.AlignUp(0, 8))
	assert.Equal(t, uintptr(8), types.AlignUp(1, 8))
	assert.Equal(t, uintptr(8), types.AlignUp(8, 8))
	assert.Equal(t, uintptr(16), types.AlignUp(9, 8))
	assert.Equal(t, uintptr(5), types.AlignUp(5, 0))
}

func TestLayoutExtend(t *testing.T) {
	// struct { a u8; b u32; c u8 } in C layout: offsets 0, 4, 8; size 12, align 4.
	l := types.Layout{}
	offA, l := l.Extend(types.Layout{Size: 1, Align: 1})
	assert.Equal(t, uintptr(0), offA)

	offB, l := l.Extend(types.Layout{Size: 4, Align: 4})
	assert.Equal(t, uintptr(4), offB)

	offC, l := l.Extend(types.Layout{Size: 1, Align: 1})
	assert.Equal(t, uintptr(8), offC)

	l = l.Pad()
	assert.Equal(t, uintptr(12), l.Size)
	assert.Equal(t, uintptr(4), l.Align)
}

func TestLayoutMax(t *testing.T) {
	a := types.Layout{Size: 4, Align: 4}
	b := types.Layout{Size: 16, Align: 8}
	m := a.Max(b)
	assert.Equal(t, uintptr(16), m.Size)
	assert.Equal(t, uintptr(8), m.Align)
}

func TestLayoutOf(t *testing.T) {
	l := types.LayoutOf[int64]()
	assert.Equal(t, uintptr(8), l.Size)
	assert.Equal(t, uintptr(8), l.Align)
}
