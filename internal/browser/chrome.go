package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer is a headless browser page that executes scripts and exposes the
// rendered markup.
type Renderer interface {
	Navigate(ctx context.Context, url string) error
	WaitPresent(ctx context.Context, selector string) error
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Launcher starts a renderer configured by opts.
type Launcher func(ctx context.Context, opts Options) (Renderer, error)

const (
	DefaultLoadTimeout = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultWidth       = 1920
	DefaultHeight      = 1080
)

// Options configures the renderer and the page load.
type Options struct {
	LoadTimeout time.Duration // Navigation deadline (default: 30s)
	UserAgent   string
	Width       int
	Height      int
	Logger      *slog.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		LoadTimeout: DefaultLoadTimeout,
		UserAgent:   DefaultUserAgent,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
	}
}

func (o *Options) applyDefaults() {
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = DefaultLoadTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// allocatorOptions builds the Chrome flags: headless, sandbox off for
// containers, fixed viewport, automation fingerprints hidden, quiet logging.
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.Width, opts.Height),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-speech-api", true),
		chromedp.Flag("disable-speech-synthesis-api", true),
		chromedp.Flag("disable-voice-transcription", true),
		chromedp.Flag("log-level", "3"),
	)
}

type chromeRenderer struct {
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// ChromeLauncher starts a headless Chrome through chromedp. The browser is
// bound to its own background context so it outlives the ctx of the call
// that opened it; Close tears it down.
func ChromeLauncher(ctx context.Context, opts Options) (Renderer, error) {
	opts.applyDefaults()
	logger := opts.Logger

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocatorOptions(opts)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
		}),
	)

	r := &chromeRenderer{ctx: browserCtx, cancelBrowser: cancelBrowser, cancelAlloc: cancelAlloc}

	// Start the browser without a deadline; a timeout on the first Run
	// would bind the whole browser to it.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(browserCtx) }()

	select {
	case err := <-started:
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("start chrome: %w", err)
		}
	case <-ctx.Done():
		_ = r.Close()
		return nil, fmt.Errorf("start chrome: %w", ctx.Err())
	}

	return r, nil
}

// scoped derives a chromedp context from the browser that ends when ctx
// does. Cancelling it does not close the tab.
func (r *chromeRenderer) scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(r.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// callerErr reports a failed run in terms of ctx. chromedp returns the error
// of its derived context, which is Canceled even when ctx hit its deadline.
func callerErr(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (r *chromeRenderer) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := r.scoped(ctx)
	defer cancel()
	return callerErr(ctx, chromedp.Run(runCtx, chromedp.Navigate(url)))
}

func (r *chromeRenderer) WaitPresent(ctx context.Context, selector string) error {
	runCtx, cancel := r.scoped(ctx)
	defer cancel()
	return callerErr(ctx, chromedp.Run(runCtx, chromedp.WaitReady(selector, chromedp.ByQuery)))
}

func (r *chromeRenderer) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := r.scoped(ctx)
	defer cancel()

	var htmlContent string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery)); err != nil {
		return "", callerErr(ctx, err)
	}
	return htmlContent, nil
}

func (r *chromeRenderer) Close() error {
	err := chromedp.Cancel(r.ctx)
	r.cancelBrowser()
	r.cancelAlloc()
	return err
}
