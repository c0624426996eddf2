package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/henrriusdev/tippscrape/internal/market"
)

// DefaultWaitTimeout bounds the wait for the first market group.
const DefaultWaitTimeout = 5 * time.Second

// ErrNoMarkets means no market group appeared within the wait timeout. The
// page may still be loading markets, so Extract reports it as an empty
// result rather than an error.
var ErrNoMarkets = errors.New("no market group found")

// Page is a live page that can be waited on and serialized.
type Page interface {
	WaitPresent(ctx context.Context, selector string) error
	Snapshot(ctx context.Context) (string, error)
}

// Extractor reads markets from a live page.
type Extractor struct {
	WaitTimeout time.Duration
	logger      *slog.Logger
}

// New creates an Extractor. A non-positive wait uses DefaultWaitTimeout.
func New(wait time.Duration, logger *slog.Logger) *Extractor {
	if wait <= 0 {
		wait = DefaultWaitTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{WaitTimeout: wait, logger: logger}
}

// Extract waits briefly for a market group, then parses the current page
// markup. It returns an empty result, not an error, when no group shows up
// in time. Errors from the page itself are returned.
func (e *Extractor) Extract(ctx context.Context, page Page) ([]market.Market, error) {
	waitCtx, cancel := context.WithTimeout(ctx, e.WaitTimeout)
	err := page.WaitPresent(waitCtx, GroupSelector)
	cancel()

	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		e.logger.Debug("market group not present yet",
			"err", ErrNoMarkets,
			"wait", e.WaitTimeout,
		)
		return nil, nil
	default:
		return nil, err
	}

	markup, err := page.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(markup), nil
}
