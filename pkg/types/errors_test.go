package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intuicio-go/kernel/pkg/types"
)

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &types.Error{Kind: types.ErrKindState, Msg: "types: bad state", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "not-found", types.ErrKindNotFound.String())
	assert.Equal(t, "type-mismatch", types.ErrKindType.String())
}

func TestSentinelsAreDistinguishable(t *testing.T) {
	assert.True(t, errors.Is(types.ErrTypeNotFound, types.ErrTypeNotFound))
	assert.False(t, errors.Is(types.ErrTypeNotFound, types.ErrFunctionNotFound))
}
