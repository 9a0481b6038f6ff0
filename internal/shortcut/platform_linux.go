//go:build linux

package shortcut

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/deskappio/deskapp/internal/appconfig"
	"github.com/deskappio/deskapp/util"
)

func platformInstall(app *appconfig.App, dir string) ([]string, error) {
	if dir == "" {
		dir = UserApplicationsDir()
	}

	deskappExe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate own executable: %w", err)
	}

	scriptPath := launcherScriptPath(app)
	if util.FileExists(scriptPath) {
		log.Warnf("overwriting existing file %s", scriptPath)
	}
	if err := writeLauncherScript(scriptPath, deskappExe, app.ModuleName); err != nil {
		return nil, err
	}

	desktopPath := filepath.Join(dir, app.AppID+".desktop")
	if util.FileExists(desktopPath) {
		log.Warnf("overwriting existing file %s", desktopPath)
	}
	entry := &desktopEntry{
		Name:           app.DisplayName,
		Exec:           scriptPath,
		Icon:           app.Icon,
		StartupWMClass: app.AppID,
	}
	if err := writeDesktopFile(desktopPath, entry); err != nil {
		return nil, err
	}

	return []string{scriptPath, desktopPath}, nil
}

func platformUninstall(app *appconfig.App, dir string) ([]string, error) {
	if dir == "" {
		dir = UserApplicationsDir()
	}

	var removed []string
	for _, path := range []string{
		filepath.Join(dir, app.AppID+".desktop"),
		launcherScriptPath(app),
	} {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			log.Warnf("no such file %s", path)
			continue
		}
		if err != nil {
			return removed, err
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func launcherScriptPath(app *appconfig.App) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "bin", app.AppID)
}
