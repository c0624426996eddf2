// Package static is the single-shot mode: one HTTP GET, one parse, no
// browser. It only works for pages that ship their markets in the initial
// HTML.
package static

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/henrriusdev/tippscrape/internal/browser"
	"github.com/henrriusdev/tippscrape/internal/extract"
	"github.com/henrriusdev/tippscrape/internal/market"
	"github.com/henrriusdev/tippscrape/internal/urlnorm"
)

const DefaultTimeout = 30 * time.Second

// Fetcher downloads and parses a page once.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher. A non-positive timeout uses DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", browser.DefaultUserAgent)
	return &Fetcher{client: client}
}

// Fetch GETs the normalized url and extracts its markets.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]market.Market, error) {
	target := urlnorm.Normalize(url)

	res, err := f.client.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", target, res.Status())
	}

	return extract.Parse(string(res.Body())), nil
}
