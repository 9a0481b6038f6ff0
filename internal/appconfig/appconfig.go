// Package appconfig loads per-application configuration from the deskapp.json
// file shipped inside a module's package and resolves it into everything the
// shortcut writer and launcher need.
package appconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deskappio/deskapp/internal/appid"
	"github.com/deskappio/deskapp/internal/pyenv"
	"github.com/deskappio/deskapp/util"
)

// ConfigFilename is looked up in the package directory of the target module
const ConfigFilename = "deskapp.json"

type fileConfig struct {
	OrgName string                  `json:"org_name"`
	Modules map[string]moduleConfig `json:"modules"`
}

type moduleConfig struct {
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	WinIcon     string `json:"winicon"`
}

// App holds the resolved configuration for one application module
type App struct {
	ModuleName  string
	PackageDir  string
	ModuleDir   string
	OrgName     string
	DisplayName string
	// Icon is the freedesktop icon (svg or png), WinIcon the .ico
	Icon    string
	WinIcon string
	AppID   string
	Env     *pyenv.Env
}

// Resolve locates the module through the environment's interpreter and loads
// its configuration.
func Resolve(ctx context.Context, moduleName string, env *pyenv.Env) (*App, error) {
	packageDir, err := env.PackageDir(ctx, moduleName)
	if err != nil {
		return nil, err
	}
	return load(moduleName, packageDir, env)
}

func load(moduleName, packageDir string, env *pyenv.Env) (*App, error) {
	parts := strings.Split(moduleName, ".")
	app := &App{
		ModuleName: moduleName,
		PackageDir: packageDir,
		ModuleDir:  filepath.Join(append([]string{packageDir}, parts[1:]...)...),
		Env:        env,
	}

	cfg, err := readConfig(filepath.Join(packageDir, ConfigFilename))
	if err != nil {
		return nil, err
	}
	app.OrgName = cfg.OrgName
	moduleCfg := cfg.Modules[moduleName]

	app.DisplayName = moduleCfg.DisplayName
	if app.DisplayName == "" {
		app.DisplayName = moduleName
	}
	if envName := env.ShortName(); envName != "" {
		app.DisplayName += fmt.Sprintf(" (%s)", envName)
	}

	if moduleCfg.WinIcon != "" {
		app.WinIcon = filepath.Join(packageDir, moduleCfg.WinIcon)
	} else {
		app.WinIcon = filepath.Join(app.ModuleDir, moduleName+".ico")
	}

	if moduleCfg.Icon != "" {
		app.Icon = filepath.Join(packageDir, moduleCfg.Icon)
	} else {
		app.Icon = filepath.Join(app.ModuleDir, moduleName+".svg")
		if !util.FileExists(app.Icon) {
			app.Icon = filepath.Join(app.ModuleDir, moduleName+".png")
		}
	}

	app.AppID = appid.ForModule(app.OrgName, moduleName, env.Prefix, env.ShortName())

	return app, nil
}

func readConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if _, err := util.ReadJson(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}
