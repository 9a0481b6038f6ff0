//go:build !windows && !linux

package shortcut

import "github.com/deskappio/deskapp/internal/appconfig"

func platformInstall(app *appconfig.App, dir string) ([]string, error) {
	return nil, ErrUnsupportedPlatform
}

func platformUninstall(app *appconfig.App, dir string) ([]string, error) {
	return nil, ErrUnsupportedPlatform
}
