package managed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/managed"
	"github.com/intuicio-go/kernel/pkg/types"
)

func TestDynamicManagedReadTypedHashGuard(t *testing.T) {
	m := managed.NewDynamic(types.HashOf[int32](), int32(99))

	ref, ok := m.Borrow()
	require.True(t, ok)
	defer ref.Close()

	v, ok := managed.Read[int32](ref)
	require.True(t, ok)
	assert.Equal(t, int32(99), v)

	_, ok = managed.Read[int64](ref)
	assert.False(t, ok, "reading at the wrong native type must fail")
}

func TestDynamicManagedWriteTypedHashGuard(t *testing.T) {
	m := managed.NewDynamic(types.HashOf[string](), "before")

	w, ok := m.BorrowMut()
	require.True(t, ok)

	assert.False(t, managed.Write(w, 123), "writing the wrong native type must fail and leave the value unchanged")
	assert.True(t, managed.Write(w, "after"))
	w.Close()

	v, ok := m.Consume()
	require.True(t, ok)
	assert.Equal(t, "after", v)
}

func TestDynamicManagedLazy(t *testing.T) {
	m := managed.NewDynamic(types.HashOf[bool](), true)
	lazy := m.Lazy()

	ref, ok := lazy.Read()
	require.True(t, ok)
	v, ok := managed.Read[bool](ref)
	require.True(t, ok)
	assert.True(t, v)
	ref.Close()
}
