// Package scraper is the entry point a control surface drives: open a page,
// poll it once or on an interval, stop, close.
//
// Input validation (non-empty URL, "/all" suffix, positive interval) is the
// caller's job; see the config package.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/henrriusdev/tippscrape/internal/browser"
	"github.com/henrriusdev/tippscrape/internal/extract"
	"github.com/henrriusdev/tippscrape/internal/market"
	"github.com/henrriusdev/tippscrape/internal/metrics"
	"github.com/henrriusdev/tippscrape/internal/persist"
	"github.com/henrriusdev/tippscrape/internal/poller"
	"github.com/henrriusdev/tippscrape/internal/urlnorm"
)

var (
	// ErrSessionClosed is returned by Start when no page is open.
	ErrSessionClosed = errors.New("no page is open")
	// ErrNoDestination is returned by Start without an output path.
	ErrNoDestination = errors.New("output file is required")
)

// Options configures a Scraper.
type Options struct {
	Browser     browser.Options
	Launcher    browser.Launcher    // nil uses headless Chrome
	WaitTimeout time.Duration       // Bounded wait for market groups (default: 5s)
	PassTimeout time.Duration       // Upper bound for one pass (default: 2m)
	OnEvent     poller.EventHandler // Receives every pass outcome; may be nil
}

// Scraper ties one browser session to the extractor, the persister and the
// polling loop.
type Scraper struct {
	session     *browser.Session
	extractor   *extract.Extractor
	handler     poller.EventHandler
	passTimeout time.Duration
	logger      *slog.Logger
	now         func() time.Time

	mu   sync.Mutex
	loop *poller.Poller
}

// New creates a Scraper with a closed session.
func New(opts Options, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Browser.Logger == nil {
		opts.Browser.Logger = logger
	}
	if opts.PassTimeout <= 0 {
		opts.PassTimeout = poller.DefaultConfig().PassTimeout
	}
	return &Scraper{
		session:     browser.NewSession(opts.Browser, opts.Launcher),
		extractor:   extract.New(opts.WaitTimeout, logger),
		handler:     opts.OnEvent,
		passTimeout: opts.PassTimeout,
		logger:      logger,
		now:         time.Now,
	}
}

// Open loads url (normalized) in a fresh browser session.
func (s *Scraper) Open(ctx context.Context, url string) error {
	if converted := urlnorm.Normalize(url); converted != url {
		s.logger.Info("URL converted", "from", url, "to", converted)
	}
	if err := s.session.Open(ctx, url); err != nil {
		return err
	}
	metrics.SetSessionOpen(true)
	return nil
}

// IsOpen reports whether a page is open.
func (s *Scraper) IsOpen() bool {
	return s.session.IsOpen()
}

// PollOnce extracts the current markets from the open page. It returns a
// nil snapshot when the page has no markets yet.
func (s *Scraper) PollOnce(ctx context.Context) (*market.Snapshot, error) {
	markets, err := s.extractor.Extract(ctx, s.session)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, nil
	}
	snap := market.NewSnapshot(s.now(), markets)
	return &snap, nil
}

// Start polls the open page every interval and writes each non-empty
// snapshot to destination, replacing its previous content.
func (s *Scraper) Start(interval time.Duration, destination string) error {
	if !s.session.IsOpen() {
		return ErrSessionClosed
	}
	if interval <= 0 {
		return poller.ErrInvalidInterval
	}
	if destination == "" {
		return ErrNoDestination
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loop != nil && s.loop.Running() {
		return poller.ErrAlreadyRunning
	}

	cfg := poller.Config{Interval: interval, PassTimeout: s.passTimeout}
	loop := poller.New(cfg, s, persist.New(destination), s.handler, s.logger)
	if err := loop.Start(context.Background()); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	s.loop = loop
	return nil
}

// Running reports whether the polling loop is active.
func (s *Scraper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop != nil && s.loop.Running()
}

// Stop ends polling after any in-flight pass. The page stays open, so Start
// can resume without navigating again.
func (s *Scraper) Stop(ctx context.Context) error {
	s.mu.Lock()
	loop := s.loop
	s.mu.Unlock()

	if loop == nil {
		return nil
	}
	return loop.Stop(ctx)
}

// Close stops polling and tears down the browser. It is safe to call on a
// closed scraper.
func (s *Scraper) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), s.passTimeout)
	defer cancel()

	if err := s.Stop(ctx); err != nil {
		s.logger.Warn("polling did not stop before close", "err", err)
	}
	s.session.Close()
	metrics.SetSessionOpen(false)
}
