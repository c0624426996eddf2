package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/henrriusdev/tippscrape/internal/config"
)

var settingsPath string

func init() {
	settingsCmd.Flags().StringVar(&settingsPath, "write", "scraper_settings.yaml", "file to write the settings to")
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Validates the effective settings and saves them for later runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if err := config.Save(settingsPath, cfg); err != nil {
			return err
		}
		slog.Info("Settings saved to " + settingsPath)
		return nil
	},
}
