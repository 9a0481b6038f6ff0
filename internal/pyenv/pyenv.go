// Package pyenv locates Python interpreters and the conda or virtual
// environments containing them, and produces activated child-process
// environments so apps can be launched without the user activating anything.
package pyenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrNoInterpreter is returned when no Python interpreter could be located
	ErrNoInterpreter = errors.New("no python interpreter found")
	// ErrModuleNotFound is returned when the environment's interpreter can't import the module
	ErrModuleNotFound = errors.New("module not found in environment")
	// ErrNotAPackage is returned when the named module is a plain module rather than a package
	ErrNotAPackage = errors.New("module is not a package")
)

// Env describes a Python installation and the conda env or virtualenv
// containing it, if any.
type Env struct {
	// Python is the absolute path to the interpreter
	Python string
	// Prefix is the installation prefix, i.e. the env root for conda/venv
	Prefix string
	// Conda is true if the interpreter belongs to a conda environment
	Conda bool
	// Venv is true if the interpreter belongs to a virtualenv/venv
	Venv bool
	// Name is the conda environment name, empty otherwise
	Name string
}

// Discover returns the environment for the given interpreter. If explicitPython
// is empty, the interpreter is taken from VIRTUAL_ENV or CONDA_PREFIX if set,
// falling back to python3/python on PATH.
func Discover(explicitPython string) (*Env, error) {
	python := explicitPython
	if python == "" {
		python = interpreterFromEnvVars()
	}
	if python == "" {
		for _, name := range []string{"python3", "python"} {
			if p, err := exec.LookPath(name); err == nil {
				python = p
				break
			}
		}
	}
	if python == "" {
		return nil, ErrNoInterpreter
	}

	python, err := filepath.Abs(python)
	if err != nil {
		return nil, fmt.Errorf("resolve interpreter path: %w", err)
	}
	if _, err := os.Stat(python); err != nil {
		return nil, fmt.Errorf("interpreter %s: %w", python, err)
	}

	return detect(python, runtime.GOOS == "windows"), nil
}

func interpreterFromEnvVars() string {
	windows := runtime.GOOS == "windows"
	if prefix := os.Getenv("VIRTUAL_ENV"); prefix != "" {
		if windows {
			return filepath.Join(prefix, "Scripts", "python.exe")
		}
		return filepath.Join(prefix, "bin", "python")
	}
	if prefix := os.Getenv("CONDA_PREFIX"); prefix != "" {
		if windows {
			return filepath.Join(prefix, "python.exe")
		}
		return filepath.Join(prefix, "bin", "python")
	}
	return ""
}

// detect inspects the filesystem around the interpreter to classify its
// environment. On Windows conda interpreters live directly in the prefix, on
// unix in <prefix>/bin.
func detect(python string, windows bool) *Env {
	env := &Env{Python: python}

	prefix := filepath.Dir(python)
	if !windows {
		prefix = filepath.Dir(prefix)
	}

	if isDir(filepath.Join(prefix, "conda-meta")) {
		env.Conda = true
		env.Prefix = prefix
		if isDir(filepath.Join(prefix, "condabin")) {
			// It's the base conda env
			env.Name = "base"
		} else {
			env.Name = filepath.Base(prefix)
		}
		return env
	}

	// venv layouts differ between platforms, pyvenv.cfg is always at the root
	for _, candidate := range []string{filepath.Dir(python), filepath.Dir(filepath.Dir(python))} {
		if fileExists(filepath.Join(candidate, "pyvenv.cfg")) {
			env.Venv = true
			env.Prefix = candidate
			return env
		}
	}

	env.Prefix = prefix
	return env
}

// Environ returns a copy of the process environment with the env effectively
// activated for child processes. If the env already appears active, or there
// is no conda env or venv involved, the copy is returned unmodified. Only
// CONDA_DEFAULT_ENV, CONDA_PREFIX, VIRTUAL_ENV, PYTHONHOME and PATH are
// considered.
func (e *Env) Environ() []string {
	return e.environ(environMap(os.Environ()), runtime.GOOS == "windows")
}

func (e *Env) environ(env map[string]string, windows bool) []string {
	switch {
	case e.Conda:
		if env["CONDA_DEFAULT_ENV"] == e.Name && sameFile(env["CONDA_PREFIX"], e.Prefix) {
			// Env is already active
			break
		}
		env["CONDA_DEFAULT_ENV"] = e.Name
		env["CONDA_PREFIX"] = e.Prefix
		env["PATH"] = prependPath(condaBinDirs(e.Prefix, windows), env["PATH"])
	case e.Venv:
		if sameFile(env["VIRTUAL_ENV"], e.Prefix) {
			// Env is already active
			break
		}
		env["VIRTUAL_ENV"] = e.Prefix
		delete(env, "PYTHONHOME")
		if windows {
			env["PATH"] = prependPath([]string{filepath.Join(e.Prefix, "Scripts")}, env["PATH"])
		} else {
			env["PATH"] = prependPath([]string{filepath.Join(e.Prefix, "bin")}, env["PATH"])
		}
	}
	return flattenEnviron(env)
}

func condaBinDirs(prefix string, windows bool) []string {
	if !windows {
		return []string{filepath.Join(prefix, "bin")}
	}
	return []string{
		prefix,
		filepath.Join(prefix, "Library", "mingw-w64", "bin"),
		filepath.Join(prefix, "Library", "usr", "bin"),
		filepath.Join(prefix, "Library", "bin"),
		filepath.Join(prefix, "Scripts"),
	}
}

// ShortName returns a short name useful for distinguishing this environment
// from others. For conda it's the env name, except the base env. For a venv
// it's the env directory name with any leading '.' stripped, except when that
// results in 'venv'. Empty otherwise.
func (e *Env) ShortName() string {
	if e.Conda {
		if e.Name == "base" {
			return ""
		}
		return e.Name
	}
	if e.Venv {
		name := strings.TrimLeft(filepath.Base(e.Prefix), ".")
		if name == "venv" {
			return ""
		}
		return name
	}
	return ""
}

// findSpecProgram asks the interpreter where the base package of a module
// lives. Exit codes distinguish "not importable" from "not a package".
const findSpecProgram = `
import importlib.util, os, sys
spec = importlib.util.find_spec(sys.argv[1])
if spec is None or spec.origin is None:
    sys.exit(3)
if not spec.parent:
    sys.exit(4)
print(os.path.dirname(spec.origin))
`

// PackageDir returns the directory of the package that the given module is in,
// as seen by this environment's interpreter.
func (e *Env) PackageDir(ctx context.Context, moduleName string) (string, error) {
	baseModule := strings.SplitN(moduleName, ".", 2)[0]

	cmd := exec.CommandContext(ctx, e.Python, "-c", findSpecProgram, baseModule)
	cmd.Env = e.Environ()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case 3:
			return "", fmt.Errorf("%w: %s", ErrModuleNotFound, baseModule)
		case 4:
			return "", fmt.Errorf("%w: %s", ErrNotAPackage, baseModule)
		}
		log.Debugf("find_spec stderr: %s", stderr.String())
		return "", fmt.Errorf("query package location of %s: %w", baseModule, err)
	}
	if err != nil {
		return "", fmt.Errorf("run %s: %w", e.Python, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func prependPath(dirs []string, path string) string {
	return strings.Join(append(dirs, path), string(os.PathListSeparator))
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.Index(kv, "="); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

func flattenEnviron(env map[string]string) []string {
	environ := make([]string, 0, len(env))
	for k, v := range env {
		environ = append(environ, k+"="+v)
	}
	return environ
}

// sameFile compares two paths ignoring case differences, since on Windows
// interpreter paths show up with inconsistent casing.
func sameFile(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
