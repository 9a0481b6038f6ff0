//go:build windows

package shortcut

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/deskappio/deskapp/internal/appconfig"
	"github.com/deskappio/deskapp/internal/propstore"
	"github.com/deskappio/deskapp/util"
)

const (
	shcneAssocChanged = 0x08000000
	shcnfIDList       = 0x0000
	shcnfFlush        = 0x1000

	sFalse = uintptr(1)
)

var (
	modShell32         = windows.NewLazySystemDLL("shell32.dll")
	procSHChangeNotify = modShell32.NewProc("SHChangeNotify")
)

func platformInstall(app *appconfig.App, dir string) ([]string, error) {
	if dir == "" {
		var err error
		if dir, err = defaultShortcutDir(app); err != nil {
			return nil, err
		}
	}

	deskappExe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate own executable: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate home directory: %w", err)
	}

	lnkPath := filepath.Join(dir, app.DisplayName+".lnk")
	if util.FileExists(lnkPath) {
		log.Warnf("overwriting existing file %s", lnkPath)
	}

	err = createShortcut(lnkPath, deskappExe, fmt.Sprintf("run %s", app.ModuleName), home, app.WinIcon, app.DisplayName)
	if err != nil {
		return nil, err
	}

	if err := stampShortcutAppID(lnkPath, app.AppID); err != nil {
		return nil, err
	}

	refreshShellCache()
	return []string{lnkPath}, nil
}

func platformUninstall(app *appconfig.App, dir string) ([]string, error) {
	if dir == "" {
		var err error
		if dir, err = defaultShortcutDir(app); err != nil {
			return nil, err
		}
	}

	lnkPath := filepath.Join(dir, app.DisplayName+".lnk")
	err := os.Remove(lnkPath)
	if os.IsNotExist(err) {
		log.Warnf("no such file %s", lnkPath)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	refreshShellCache()
	return []string{lnkPath}, nil
}

// defaultShortcutDir returns the Start menu Programs folder for the current
// user, with the org subfolder when one is configured
func defaultShortcutDir(app *appconfig.App) (string, error) {
	programs, err := windows.KnownFolderPath(windows.FOLDERID_Programs, 0)
	if err != nil {
		return "", fmt.Errorf("resolve start menu folder: %w", err)
	}
	if app.OrgName != "" {
		return filepath.Join(programs, app.OrgName), nil
	}
	return programs, nil
}

// createShortcut writes a .lnk through the WScript.Shell COM object
func createShortcut(lnkPath, target, arguments, workingDir, iconFile, description string) error {
	if err := os.MkdirAll(filepath.Dir(lnkPath), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(lnkPath), err)
	}

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE just means COM was already initialized on this thread
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("create WScript.Shell: %w", err)
	}
	defer unknown.Release()

	wshell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("query WScript.Shell dispatch: %w", err)
	}
	defer wshell.Release()

	result, err := oleutil.CallMethod(wshell, "CreateShortcut", lnkPath)
	if err != nil {
		return fmt.Errorf("CreateShortcut %s: %w", lnkPath, err)
	}
	sc := result.ToIDispatch()
	defer sc.Release()

	properties := []struct {
		name  string
		value string
	}{
		{"TargetPath", target},
		{"Arguments", arguments},
		{"WorkingDirectory", workingDir},
		{"IconLocation", iconFile},
		{"Description", description},
	}
	for _, prop := range properties {
		if prop.value == "" {
			continue
		}
		if _, err := oleutil.PutProperty(sc, prop.name, prop.value); err != nil {
			return fmt.Errorf("set shortcut %s: %w", prop.name, err)
		}
	}

	if _, err := oleutil.CallMethod(sc, "Save"); err != nil {
		return fmt.Errorf("save %s: %w", lnkPath, err)
	}
	return nil
}

// stampShortcutAppID writes the AppUserModelID into the shortcut's property
// store so pinned/grouped taskbar entries resolve back to this shortcut
func stampShortcutAppID(lnkPath, appID string) error {
	store, err := propstore.FromPath(lnkPath)
	if err != nil {
		return err
	}
	defer store.Release()

	if err := store.SetAppID(appID); err != nil {
		return err
	}
	return store.Commit()
}

// refreshShellCache nudges the shell into refreshing its icon cache
func refreshShellCache() {
	_, _, _ = procSHChangeNotify.Call(shcneAssocChanged, shcnfIDList|shcnfFlush, 0, 0)
}
