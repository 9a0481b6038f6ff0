package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deskappio/deskapp/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints deskapp version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.DeskappVersion())
	},
}
