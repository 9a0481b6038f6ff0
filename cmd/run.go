package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deskappio/deskapp/internal/launcher"
	"github.com/deskappio/deskapp/internal/pyenv"
)

var runCmd = &cobra.Command{
	Use:   "run <module> [args...]",
	Short: "Launch an app module with its environment activated and a hidden console",
	Long: "Launch the given Python module with its conda env or virtualenv activated " +
		"for the child process. On Windows the child runs without a console window, " +
		"so GUI apps started from a shortcut behave like native applications. The " +
		"child's exit code is propagated.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// launched from a shortcut there is no console worth keeping
		launcher.HideOwnConsole()

		env, err := pyenv.Discover(pythonPath)
		if err != nil {
			return err
		}

		code, err := launcher.Run(cmd.Context(), env, args[0], args[1:])
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	// everything after the module name belongs to the app
	runCmd.Flags().SetInterspersed(false)
}
