package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskappio/deskapp/internal/appconfig"
	"github.com/deskappio/deskapp/internal/pyenv"
)

var appidCmd = &cobra.Command{
	Use:   "appid <module>",
	Short: "Print the application identifier derived for a module",
	Long: "Print the identifier tying the module's windows to its shortcut: the " +
		"AppUserModelID on Windows, the .desktop/launcher name on Linux. Apps embed " +
		"this value when tagging their own windows.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := pyenv.Discover(pythonPath)
		if err != nil {
			return err
		}

		app, err := appconfig.Resolve(cmd.Context(), args[0], env)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), app.AppID)
		return nil
	},
}
