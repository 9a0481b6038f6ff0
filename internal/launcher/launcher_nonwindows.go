//go:build !windows

package launcher

import "os/exec"

func hideChildConsole(cmd *exec.Cmd) {
	// consoles are a Windows concern
}

// HideOwnConsole is a no-op outside Windows.
func HideOwnConsole() {}
