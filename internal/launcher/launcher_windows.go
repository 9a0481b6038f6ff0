//go:build windows

package launcher

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	kernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procFreeConsole = kernel32.NewProc("FreeConsole")
)

// hideChildConsole starts the child without a console window
func hideChildConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}

// HideOwnConsole detaches the current process from its console. Called before
// launching a GUI app so a console window opened for the launcher itself
// doesn't linger next to the app.
func HideOwnConsole() {
	_, _, _ = procFreeConsole.Call()
}
