package app

import (
	"github.com/spf13/cobra"
)

// RootCmd is the root command for stayscope. Invoked with a dataset path it
// behaves like the explore subcommand.
var RootCmd = &cobra.Command{
	Use:   "stayscope [dataset]",
	Short: "Explore short-term rental listing datasets",
	Long: `stayscope loads a delimited listings dataset and explores it three ways:
an interactive console menu, a read-only HTTP API, and one-shot report files.

The dataset argument may be a file, a directory (the newest .csv/.txt/.xlsx
inside is used), or omitted to pick the newest dataset under the configured
data directory. Filtering is cumulative in the console: every round narrows
the current set further, and only a reload restores the full dataset.`,
	Example: `  # Explore a dataset interactively
  stayscope data/listings.csv

  # Serve the dataset as a JSON API on port 8080
  stayscope serve data/listings.csv

  # Write stats.json and hosts.json for listings under $200
  stayscope report data/listings.csv --max-price 200`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runExplore(cmd, args)
	},
}

func init() {
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
