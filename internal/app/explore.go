package app

import (
	"github.com/spf13/cobra"

	"stayscope/internal/infrastructure"
	"stayscope/internal/menu"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [dataset]",
	Short: "Explore a listings dataset interactively",
	Long: `Load a dataset and open the numbered console menu: filter the set by
price, room and review bounds, view stats and the listings-per-host ranking,
preview listings, export views as JSON, or reload the dataset.

Filter rounds are cumulative. Each round narrows the current set further;
the reload option is the only way back to the full dataset.`,
	Example: `  # Explore a dataset file
  stayscope explore data/listings.csv

  # Explore the newest dataset in a directory
  stayscope explore data/

  # Explore the newest dataset under the configured data directory
  stayscope explore`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	RootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	ctx := cmd.Context()
	pathArg := ""
	if len(args) > 0 {
		pathArg = args[0]
	}

	dataset, path, err := rt.loadDataset(ctx, pathArg)
	if err != nil {
		return err
	}

	session := menu.NewSession(dataset, menu.Options{
		Input:       cmd.InOrStdin(),
		Output:      cmd.OutOrStdout(),
		PreviewRows: rt.cfg.Dataset.PreviewRows,
		Reload:      rt.reloader(path),
	})
	return session.Run(ctx)
}
