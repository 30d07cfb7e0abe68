package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayscope/pkg/contracts"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		info := contracts.GetVersionInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s/%s, %s)\n",
			contracts.GetVersionString(), info.OS, info.Architecture, info.GoVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s, built: %s, api: %s, data format: %s\n",
			info.GitCommit, info.BuildTime, info.APIVersion, info.DataFormat)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
