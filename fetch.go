package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/henrriusdev/tippscrape/internal/persist"
	"github.com/henrriusdev/tippscrape/internal/static"
)

var fetchSave bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "also write the result to the output file")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches the page once over plain HTTP, without a browser.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		markets, err := static.NewFetcher(cfg.LoadTimeout).Fetch(cmd.Context(), cfg.URL)
		if err != nil {
			return err
		}
		printMarkets(markets)

		if fetchSave && len(markets) > 0 {
			if err := persist.New(cfg.OutputFile).Persist(markets); err != nil {
				return err
			}
			slog.Info("Data saved", "output", cfg.OutputFile, "markets", len(markets))
		}
		return nil
	},
}
