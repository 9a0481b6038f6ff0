//go:build linux

package shortcut

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskappio/deskapp/internal/appconfig"
	"github.com/deskappio/deskapp/internal/pyenv"
)

func testApp(t *testing.T) *appconfig.App {
	t.Helper()
	return &appconfig.App{
		ModuleName:  "oink",
		DisplayName: "Oink (science)",
		Icon:        "/opt/envs/science/lib/oink/oink.svg",
		AppID:       "oink-science",
		Env:         &pyenv.Env{Conda: true, Name: "science", Prefix: "/opt/envs/science"},
	}
}

func TestInstallAndUninstall(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	menuDir := t.TempDir()
	app := testApp(t)

	created, err := Install(app, menuDir)
	require.NoError(t, err)

	scriptPath := filepath.Join(home, ".local", "bin", "oink-science")
	desktopPath := filepath.Join(menuDir, "oink-science.desktop")
	assert.ElementsMatch(t, []string{scriptPath, desktopPath}, created)

	content, err := os.ReadFile(desktopPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name=Oink (science)\n")
	assert.Contains(t, string(content), "StartupWMClass=oink-science\n")
	assert.Contains(t, string(content), "Exec="+scriptPath+"\n")

	removed, err := Uninstall(app, menuDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{scriptPath, desktopPath}, removed)
	assert.NoFileExists(t, desktopPath)
	assert.NoFileExists(t, scriptPath)
}

func TestUninstallMissingFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	menuDir := t.TempDir()

	removed, err := Uninstall(testApp(t), menuDir)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestInstallOverwritesExisting(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	menuDir := t.TempDir()
	app := testApp(t)

	_, err := Install(app, menuDir)
	require.NoError(t, err)
	_, err = Install(app, menuDir)
	require.NoError(t, err)
}
