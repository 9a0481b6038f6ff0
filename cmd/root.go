package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deskappio/deskapp/util"
)

var (
	logLevel    string
	logFile     string
	pythonPath  string
	shortcutDir string
	quietFlag   bool

	rootCmd = &cobra.Command{
		Use:          "deskapp",
		Short:        "OS menu shortcuts, correct taskbar behaviour, and environment activation for Python GUI apps",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.SetFlagsFromEnvVars(rootCmd)
		if cmd != rootCmd {
			util.SetFlagsFromEnvVars(cmd)
		}
		return util.InitLog(logLevel, logFile)
	}

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "sets deskapp log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "console", "sets deskapp log path. If console is specified the log will be output to stderr")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(appidCmd)
	rootCmd.AddCommand(versionCmd)

	for _, cmd := range []*cobra.Command{installCmd, uninstallCmd} {
		cmd.PersistentFlags().StringVar(&shortcutDir, "path", "",
			"Directory to create/delete the shortcut or .desktop file in. Defaults to "+
				"the Start menu on Windows and ~/.local/share/applications on Linux")
		cmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Don't print the names of files created/deleted")
	}

	for _, cmd := range []*cobra.Command{installCmd, uninstallCmd, runCmd, appidCmd} {
		cmd.PersistentFlags().StringVar(&pythonPath, "python", "",
			"Python interpreter of the environment containing the app. Defaults to the "+
				"active environment's interpreter, then to python3/python on PATH")
	}
}
