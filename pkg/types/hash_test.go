package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intuicio-go/kernel/pkg/types"
)

func TestHashStringDeterministic(t *testing.T) {
	a := types.HashString("vector3")
	b := types.HashString("vector3")
	assert.Equal(t, a, b)
}

func TestHashStringDiscriminates(t *testing.T) {
	a := types.HashString("vector3")
	b := types.HashString("vector4")
	assert.NotEqual(t, a, b)
}

func TestHashNamedQualifies(t *testing.T) {
	withModule := types.HashNamed("math", "vector3")
	bare := types.HashString("vector3")
	assert.NotEqual(t, withModule, bare)
	assert.Equal(t, types.HashString("math::vector3"), withModule)
}

func TestHashNamedEmptyModule(t *testing.T) {
	assert.Equal(t, types.HashString("vector3"), types.HashNamed("", "vector3"))
}

func TestHashOfNativeStable(t *testing.T) {
	type point struct{ X, Y int32 }
	a := types.HashOf[point]()
	b := types.HashOf[point]()
	assert.Equal(t, a, b)
}

func TestHashOfDistinctTypes(t *testing.T) {
	assert.NotEqual(t, types.HashOf[int32](), types.HashOf[int64]())
}
