package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/henrriusdev/tippscrape/internal/persist"
)

func init() {
	rootCmd.AddCommand(onceCmd)
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Opens the page, extracts its markets once, saves them and exits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		s := newScraper(cfg, nil)
		defer s.Close()

		slog.Info("Loading page with headless Chrome...")
		if err := s.Open(cmd.Context(), cfg.URL); err != nil {
			return err
		}

		snap, err := s.PollOnce(cmd.Context())
		if err != nil {
			return err
		}
		if snap == nil {
			slog.Info("No betting options found yet")
			return nil
		}

		printMarkets(snap.Markets)
		if err := persist.New(cfg.OutputFile).WriteSnapshot(*snap); err != nil {
			return err
		}
		slog.Info("Data saved", "output", cfg.OutputFile, "markets", snap.Len())
		return nil
	},
}
