package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the medrem version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "medrem %s\n", buildVersion)
	},
}
