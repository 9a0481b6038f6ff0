package pyenv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePrefix builds a synthetic environment prefix with the given marker
// entries. Directory markers end with a slash.
func makePrefix(t *testing.T, markers ...string) string {
	t.Helper()
	prefix := t.TempDir()
	for _, marker := range markers {
		path := filepath.Join(prefix, filepath.FromSlash(strings.TrimSuffix(marker, "/")))
		if strings.HasSuffix(marker, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
		} else {
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, nil, 0o644))
		}
	}
	return prefix
}

func TestDetectCondaEnv(t *testing.T) {
	prefix := makePrefix(t, "conda-meta/", "bin/python")

	env := detect(filepath.Join(prefix, "bin", "python"), false)

	assert.True(t, env.Conda)
	assert.False(t, env.Venv)
	assert.Equal(t, prefix, env.Prefix)
	assert.Equal(t, filepath.Base(prefix), env.Name)
	assert.Equal(t, filepath.Base(prefix), env.ShortName())
}

func TestDetectCondaBaseEnv(t *testing.T) {
	prefix := makePrefix(t, "conda-meta/", "condabin/", "bin/python")

	env := detect(filepath.Join(prefix, "bin", "python"), false)

	assert.True(t, env.Conda)
	assert.Equal(t, "base", env.Name)
	assert.Empty(t, env.ShortName())
}

func TestDetectCondaEnvWindowsLayout(t *testing.T) {
	// on Windows the interpreter sits directly in the prefix
	prefix := makePrefix(t, "conda-meta/", "python.exe")

	env := detect(filepath.Join(prefix, "python.exe"), true)

	assert.True(t, env.Conda)
	assert.Equal(t, prefix, env.Prefix)
}

func TestDetectVenv(t *testing.T) {
	prefix := makePrefix(t, "pyvenv.cfg", "bin/python")

	env := detect(filepath.Join(prefix, "bin", "python"), false)

	assert.True(t, env.Venv)
	assert.False(t, env.Conda)
	assert.Equal(t, prefix, env.Prefix)
}

func TestDetectVenvWindowsLayout(t *testing.T) {
	prefix := makePrefix(t, "pyvenv.cfg", "Scripts/python.exe")

	env := detect(filepath.Join(prefix, "Scripts", "python.exe"), true)

	assert.True(t, env.Venv)
	assert.Equal(t, prefix, env.Prefix)
}

func TestDetectBareInterpreter(t *testing.T) {
	prefix := makePrefix(t, "bin/python3")

	env := detect(filepath.Join(prefix, "bin", "python3"), false)

	assert.False(t, env.Conda)
	assert.False(t, env.Venv)
	assert.Empty(t, env.ShortName())
}

func TestShortNameVenv(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"myenv", "myenv"},
		{".myenv", "myenv"},
		{"venv", ""},
		{".venv", ""},
	}
	for _, tc := range tests {
		env := &Env{Venv: true, Prefix: filepath.Join("/home/user/project", tc.dir)}
		assert.Equal(t, tc.want, env.ShortName(), "dir %q", tc.dir)
	}
}

func TestEnvironActivatesVenv(t *testing.T) {
	env := &Env{Venv: true, Prefix: "/opt/envs/myenv", Python: "/opt/envs/myenv/bin/python"}

	environ := env.environ(map[string]string{
		"PATH":       "/usr/bin",
		"PYTHONHOME": "/usr",
	}, false)

	m := environMap(environ)
	assert.Equal(t, "/opt/envs/myenv", m["VIRTUAL_ENV"])
	assert.Equal(t, "/opt/envs/myenv/bin:/usr/bin", m["PATH"])
	_, hasPythonHome := m["PYTHONHOME"]
	assert.False(t, hasPythonHome)
}

func TestEnvironVenvAlreadyActive(t *testing.T) {
	env := &Env{Venv: true, Prefix: "/opt/envs/myenv"}

	environ := env.environ(map[string]string{
		"VIRTUAL_ENV": "/opt/envs/myenv",
		"PATH":        "/opt/envs/myenv/bin:/usr/bin",
	}, false)

	m := environMap(environ)
	assert.Equal(t, "/opt/envs/myenv/bin:/usr/bin", m["PATH"], "active env must not be re-prepended")
}

func TestEnvironActivatesConda(t *testing.T) {
	env := &Env{Conda: true, Name: "science", Prefix: "/opt/conda/envs/science"}

	environ := env.environ(map[string]string{"PATH": "/usr/bin"}, false)

	m := environMap(environ)
	assert.Equal(t, "science", m["CONDA_DEFAULT_ENV"])
	assert.Equal(t, "/opt/conda/envs/science", m["CONDA_PREFIX"])
	assert.Equal(t, "/opt/conda/envs/science/bin:/usr/bin", m["PATH"])
}

func TestEnvironActivatesCondaWindows(t *testing.T) {
	prefix := filepath.FromSlash("C:/conda/envs/science")
	env := &Env{Conda: true, Name: "science", Prefix: prefix}

	environ := env.environ(map[string]string{"PATH": "C:\\Windows"}, true)

	m := environMap(environ)
	// conda on windows needs the prefix itself plus the Library/Scripts dirs
	assert.True(t, strings.HasPrefix(m["PATH"], prefix))
	assert.Contains(t, m["PATH"], filepath.Join(prefix, "Scripts"))
	assert.Contains(t, m["PATH"], filepath.Join(prefix, "Library", "bin"))
}

func TestEnvironBareInterpreterUnchanged(t *testing.T) {
	env := &Env{Prefix: "/usr"}

	environ := env.environ(map[string]string{"PATH": "/usr/bin"}, false)

	m := environMap(environ)
	assert.Equal(t, "/usr/bin", m["PATH"])
	_, hasVenv := m["VIRTUAL_ENV"]
	assert.False(t, hasVenv)
}
