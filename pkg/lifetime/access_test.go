package lifetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/lifetime"
)

type point struct{ X, Y int }

func TestValueReadAccessRemap(t *testing.T) {
	s := lifetime.New()
	p := &point{X: 1, Y: 2}

	guard, ok := lifetime.AcquireReadAccess(s, p)
	require.True(t, ok)
	defer guard.Close()

	xGuard := lifetime.Remap(guard, func(p *point) *int { return &p.X })
	assert.Equal(t, 1, *xGuard.Get())
}

func TestValueWriteAccessExclusive(t *testing.T) {
	s := lifetime.New()
	p := &point{}

	w, ok := lifetime.AcquireWriteAccess(s, p)
	require.True(t, ok)

	_, ok = lifetime.AcquireReadAccess(s, p)
	assert.False(t, ok)

	w.Get().X = 42
	w.Close()

	r, ok := lifetime.AcquireReadAccess(s, p)
	require.True(t, ok)
	assert.Equal(t, 42, r.Get().X)
	r.Close()
}
