package shortcut

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UserApplicationsDir returns the directory where user .desktop files belong,
// typically ~/.local/share/applications
func UserApplicationsDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "applications")
}

type desktopEntry struct {
	Name string
	Exec string
	Icon string
	// StartupWMClass lets the desktop environment match the app's windows to
	// this entry for taskbar grouping
	StartupWMClass string
}

func (e *desktopEntry) write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"[Desktop Entry]\nName=%s\nExec=%s\nIcon=%s\nType=Application\nStartupWMClass=%s\n",
		e.Name,
		escapeDesktopValue(e.Exec),
		escapeDesktopValue(e.Icon),
		e.StartupWMClass,
	)
	return err
}

func writeDesktopFile(path string, entry *desktopEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := entry.write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// escapeDesktopValue escapes a filepath for use in a .desktop file value.
// Backslashes go first so the escapes themselves survive.
func escapeDesktopValue(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		" ", `\s`,
		"\n", `\n`,
		"\t", `\t`,
	)
	return replacer.Replace(s)
}

// writeLauncherScript writes the tiny script the .desktop entry executes. The
// script is named after the appid because most toolkits derive WM_CLASS from
// argv[0], which has to match the .desktop file for taskbar grouping.
func writeLauncherScript(path, deskappExe, moduleName string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	script := fmt.Sprintf("#!/bin/sh\nexec %q run %q \"$@\"\n", deskappExe, moduleName)
	return os.WriteFile(path, []byte(script), 0o755)
}
