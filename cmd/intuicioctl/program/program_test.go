package program_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/cmd/intuicioctl/program"
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/vm"
)

const addScript = `{
  "name": "add",
  "operations": [
    {"kind": "expression", "push": {"i32": 10}},
    {"kind": "expression", "push": {"i32": 32}},
    {"kind": "call_function", "func": "math.add"}
  ]
}`

func TestLoadAndRunAddScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.json")
	require.NoError(t, os.WriteFile(path, []byte(addScript), 0644))

	registry, s, err := program.Load(path)
	require.NoError(t, err)

	ctx := core.NewContext()
	vm.NewScope(s).Run(ctx, registry)

	result, ok := core.PopValue[int32](ctx)
	require.True(t, ok)
	assert.Equal(t, int32(42), result)
}

func TestLoadRejectsUnknownOperationKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"operations":[{"kind":"not_a_real_op"}]}`), 0644))

	_, _, err := program.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, _, err := program.Load("/nonexistent/path.json")
	assert.Error(t, err)
}
