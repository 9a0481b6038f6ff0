// Package launcher runs an application module with its environment activated,
// wiring through stdio and the exit code. On Windows the child is started with
// a hidden console so GUI apps launched from a shortcut don't flash a console
// window.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/deskappio/deskapp/internal/pyenv"
)

// Run executes the given module in the environment and returns the child's
// exit code. The module's file is passed to the interpreter as a script rather
// than via -m, so a package can show a splash screen before its package
// __init__ runs.
func Run(ctx context.Context, env *pyenv.Env, moduleName string, args []string) (int, error) {
	packageDir, err := env.PackageDir(ctx, moduleName)
	if err != nil {
		return 1, err
	}

	scriptPath, err := scriptPath(packageDir, moduleName)
	if err != nil {
		return 1, err
	}

	python := consolelessToConsole(env.Python)

	log.Debugf("launching %s %s", python, scriptPath)
	cmd := exec.CommandContext(ctx, python, append([]string{scriptPath}, args...)...)
	cmd.Env = env.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	hideChildConsole(cmd)

	// a Ctrl-C in the terminal is for the child, the launcher just waits
	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)

	code, err := exitStatus(cmd.Run())
	if err != nil {
		return code, fmt.Errorf("run %s: %w", moduleName, err)
	}
	return code, nil
}

// exitStatus maps the result of Cmd.Run to the child's exit code. A child
// killed by a signal reports -1, which must never reach os.Exit; it becomes a
// plain failure exit instead.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, err
}

// scriptPath resolves the module to its file within the package directory, or
// its __main__.py if the module is a package.
func scriptPath(packageDir, moduleName string) (string, error) {
	parts := strings.Split(moduleName, ".")
	path := filepath.Join(append([]string{packageDir}, parts[1:]...)...)

	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, "__main__.py")
	} else {
		path += ".py"
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("module %s has no runnable script at %s: %w", moduleName, path, err)
	}
	return path, nil
}

// consolelessToConsole maps pythonw.exe to the sibling python.exe. The child
// is spawned with a hidden console instead, which still allows it to own
// stdio for debugging.
func consolelessToConsole(python string) string {
	if strings.EqualFold(filepath.Base(python), "pythonw.exe") {
		return filepath.Join(filepath.Dir(python), "python.exe")
	}
	return python
}
