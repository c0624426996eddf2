package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/henrriusdev/tippscrape/internal/config"
	"github.com/henrriusdev/tippscrape/internal/market"
)

var (
	configPath  string
	urlFlag     string
	intervalSec int
	outputFile  string
	loadTimeout time.Duration
	waitTimeout time.Duration
	metricsAddr string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "tippscrape",
	Short: "tippscrape keeps a TippmixPro page open and saves its betting markets.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML settings file")
	flags.StringVarP(&urlFlag, "url", "u", "", "sportsbook page URL (must end with /all)")
	flags.IntVarP(&intervalSec, "interval", "i", config.DefaultIntervalSeconds, "polling interval in seconds")
	flags.StringVarP(&outputFile, "output", "o", config.DefaultOutputFile, "output JSON file")
	flags.DurationVar(&loadTimeout, "load-timeout", config.DefaultLoadTimeout, "page load timeout")
	flags.DurationVar(&waitTimeout, "wait-timeout", config.DefaultWaitTimeout, "wait for market groups per pass")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig loads the settings file, if any, and lets explicitly set
// flags override it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadWithDefaults(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = urlFlag
	}
	if flags.Changed("interval") {
		cfg.IntervalSeconds = intervalSec
	}
	if flags.Changed("output") {
		cfg.OutputFile = outputFile
	}
	if flags.Changed("load-timeout") {
		cfg.LoadTimeout = loadTimeout
	}
	if flags.Changed("wait-timeout") {
		cfg.WaitTimeout = waitTimeout
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printMarkets(markets []market.Market) {
	if len(markets) == 0 {
		slog.Info("No markets found")
		return
	}

	fmt.Printf("\n=== Found %d Markets ===\n\n", len(markets))

	for _, m := range markets {
		title := m.Legend
		if title == "" {
			title = "(no legend)"
		}
		if id := m.ID(); id != "" {
			title = fmt.Sprintf("%s [%s]", title, id)
		}
		fmt.Printf("%s\n", title)
		fmt.Println(strings.Repeat("-", len(title)))

		for _, o := range m.Outcomes {
			fmt.Printf("  %-30s | Odds: %8s\n", o.Text, o.Odds)
		}
		fmt.Println()
	}
}
