package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskappio/deskapp/internal/appconfig"
	"github.com/deskappio/deskapp/internal/pyenv"
	"github.com/deskappio/deskapp/internal/shortcut"
)

var installCmd = &cobra.Command{
	Use:   "install <module>...",
	Short: "Create a Start menu shortcut (Windows) or .desktop file (Linux) for the given app modules",
	Long: "Create a Start menu shortcut (Windows) or .desktop file (Linux) to run the " +
		"Python module of the given name. The package owning the module may carry a " +
		"deskapp.json declaring its display name and icons; sensible defaults apply " +
		"otherwise.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := pyenv.Discover(pythonPath)
		if err != nil {
			return err
		}

		for _, moduleName := range args {
			app, err := appconfig.Resolve(cmd.Context(), moduleName, env)
			if err != nil {
				return err
			}
			created, err := shortcut.Install(app, shortcutDir)
			if err != nil {
				return err
			}
			if !quietFlag {
				for _, path := range created {
					fmt.Fprintf(cmd.OutOrStdout(), " -> created %s\n", path)
				}
			}
		}
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <module>...",
	Short: "Remove the shortcut or .desktop file for the given app modules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := pyenv.Discover(pythonPath)
		if err != nil {
			return err
		}

		for _, moduleName := range args {
			app, err := appconfig.Resolve(cmd.Context(), moduleName, env)
			if err != nil {
				return err
			}
			removed, err := shortcut.Uninstall(app, shortcutDir)
			if err != nil {
				return err
			}
			if !quietFlag {
				for _, path := range removed {
					fmt.Fprintf(cmd.OutOrStdout(), " -> deleted %s\n", path)
				}
			}
		}
		return nil
	},
}
