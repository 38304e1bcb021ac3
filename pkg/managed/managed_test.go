package managed_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/managed"
)

// TestManagedBorrowExclusion is seed test scenario 6 from spec.md §8.
func TestManagedBorrowExclusion(t *testing.T) {
	m := managed.New(7)

	refMut, ok := m.BorrowMut()
	require.True(t, ok)

	_, ok = m.Borrow()
	assert.False(t, ok, "no read borrow while a write borrow is held")
	nested, ok := m.BorrowMut()
	assert.True(t, ok, "nested write borrow succeeds while no reader is outstanding")

	// Release both write borrows, deepest first (LIFO), before continuing
	// the scenario's original two-ref check.
	nested.Close()
	refMut.Close()

	ref1, ok := m.Borrow()
	require.True(t, ok)
	ref2, ok := m.Borrow()
	require.True(t, ok)

	_, ok = m.BorrowMut()
	assert.False(t, ok, "no write borrow while readers are outstanding")

	ref1.Close()
	ref2.Close()

	refMut2, ok := m.BorrowMut()
	require.True(t, ok)
	refMut2.Close()
}

func TestManagedConsumeRequiresIdle(t *testing.T) {
	m := managed.New("hello")
	ref, ok := m.Borrow()
	require.True(t, ok)

	_, ok = m.Consume()
	assert.False(t, ok, "cannot consume while a borrow is outstanding")

	ref.Close()
	v, ok := m.Consume()
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestManagedLazyRevalidatesOnCollection(t *testing.T) {
	m := managed.New(42)
	lazy := m.Lazy()

	ref, ok := lazy.Read()
	require.True(t, ok)
	assert.Equal(t, 42, *ref.Get())
	ref.Close()

	m = nil
	runtime.GC()
	runtime.GC()

	_, ok = lazy.Read()
	assert.False(t, ok, "lazy handle must not keep the Managed alive")
}
