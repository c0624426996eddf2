package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/henrriusdev/tippscrape/internal/browser"
	"github.com/henrriusdev/tippscrape/internal/config"
	"github.com/henrriusdev/tippscrape/internal/metrics"
	"github.com/henrriusdev/tippscrape/internal/poller"
	"github.com/henrriusdev/tippscrape/internal/scraper"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keeps the page open and saves its markets every interval until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("Starting TippmixPro live scraper", "interval", cfg.Interval(), "output", cfg.OutputFile)

		if cfg.MetricsAddr != "" {
			srv := serveMetrics(cfg.MetricsAddr)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		s := newScraper(cfg, poller.EventHandlerFunc(func(e poller.Event) {
			slog.Info(e.String(), "id", e.ID, "duration", e.Duration)
		}))
		defer s.Close()

		if err := s.Open(ctx, cfg.URL); err != nil {
			return err
		}
		if err := s.Start(cfg.Interval(), cfg.OutputFile); err != nil {
			return err
		}

		<-ctx.Done()
		slog.Info("Interrupted, stopping")

		stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return s.Stop(stopCtx)
	},
}

func newScraper(cfg *config.Config, handler poller.EventHandler) *scraper.Scraper {
	opts := browser.DefaultOptions()
	opts.LoadTimeout = cfg.LoadTimeout

	return scraper.New(scraper.Options{
		Browser:     opts,
		WaitTimeout: cfg.WaitTimeout,
		OnEvent:     handler,
	}, slog.Default())
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()
	slog.Info("serving metrics", "addr", addr)
	return srv
}
