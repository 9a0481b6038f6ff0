// Package shortcut creates and removes the system menu entries for
// applications: Start menu .lnk shortcuts on Windows, .desktop files plus a
// launcher script on Linux.
package shortcut

import (
	"errors"

	"github.com/deskappio/deskapp/internal/appconfig"
)

// ErrUnsupportedPlatform is returned on platforms without menu support (macOS
// is not implemented)
var ErrUnsupportedPlatform = errors.New("shortcut installation is not supported on this platform")

// Install writes the menu entry for the app, and on Linux the launcher script
// the entry points at. dir overrides the default menu location when non-empty.
// Returns the paths of the files created.
func Install(app *appconfig.App, dir string) ([]string, error) {
	return platformInstall(app, dir)
}

// Uninstall removes the files Install created and returns their paths.
// Files already missing are logged, not errors.
func Uninstall(app *appconfig.App, dir string) ([]string, error) {
	return platformUninstall(app, dir)
}
