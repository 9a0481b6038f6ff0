package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitStatusSuccess(t *testing.T) {
	code, err := exitStatus(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestExitStatusOtherError(t *testing.T) {
	failure := errors.New("no such interpreter")

	code, err := exitStatus(failure)
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, failure)
}

func TestScriptPathPackage(t *testing.T) {
	packageDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(packageDir, "__main__.py"), nil, 0o644))

	path, err := scriptPath(packageDir, "oink")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(packageDir, "__main__.py"), path)
}

func TestScriptPathSubpackage(t *testing.T) {
	packageDir := t.TempDir()
	subDir := filepath.Join(packageDir, "subapp")
	require.NoError(t, os.MkdirAll(subDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "__main__.py"), nil, 0o644))

	path, err := scriptPath(packageDir, "mypkg.subapp")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(subDir, "__main__.py"), path)
}

func TestScriptPathPlainModule(t *testing.T) {
	packageDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(packageDir, "tool.py"), nil, 0o644))

	path, err := scriptPath(packageDir, "mypkg.tool")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(packageDir, "tool.py"), path)
}

func TestScriptPathMissing(t *testing.T) {
	packageDir := t.TempDir()

	_, err := scriptPath(packageDir, "oink")
	assert.Error(t, err)
}

func TestConsolelessToConsole(t *testing.T) {
	assert.Equal(t,
		filepath.Join(string(filepath.Separator)+"env", "python.exe"),
		consolelessToConsole(filepath.Join(string(filepath.Separator)+"env", "Pythonw.exe")))
	assert.Equal(t, "/usr/bin/python3", consolelessToConsole("/usr/bin/python3"))
}
