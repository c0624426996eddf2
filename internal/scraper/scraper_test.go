package scraper

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrriusdev/tippscrape/internal/browser"
	"github.com/henrriusdev/tippscrape/internal/persist"
	"github.com/henrriusdev/tippscrape/internal/poller"
)

const pageHTML = `<html><body><div class="market-group">
  <article class="market market-id-55 market-part-1">
    <legend>1X2</legend>
    <div class="outcome"><span class="outcome-label">Hazai</span><span class="outcome-odds">2.05</span></div>
    <div class="outcome"><span class="outcome-label">Vendég</span><span class="outcome-odds">3.30</span></div>
  </article>
</div></body></html>`

// pageRenderer serves scripted markup; an entry of "" makes HTML fail.
type pageRenderer struct {
	mu        sync.Mutex
	pages     []string
	calls     int
	navigated []string
	closed    bool
	noGroup   bool
}

func (r *pageRenderer) Navigate(ctx context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigated = append(r.navigated, url)
	return nil
}

func (r *pageRenderer) WaitPresent(ctx context.Context, selector string) error {
	if r.noGroup {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (r *pageRenderer) HTML(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.calls
	r.calls++
	if i >= len(r.pages) {
		i = len(r.pages) - 1
	}
	if r.pages[i] == "" {
		return "", errors.New("renderer crashed")
	}
	return r.pages[i], nil
}

func (r *pageRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func newTestScraper(r *pageRenderer, handler poller.EventHandler) *Scraper {
	return New(Options{
		Launcher: func(ctx context.Context, opts browser.Options) (browser.Renderer, error) {
			return r, nil
		},
		WaitTimeout: 20 * time.Millisecond,
		PassTimeout: time.Second,
		OnEvent:     handler,
	}, nil)
}

func TestScraperPollOnce(t *testing.T) {
	r := &pageRenderer{pages: []string{pageHTML}}
	s := newTestScraper(r, nil)

	require.NoError(t, s.Open(context.Background(), "https://www.tippmixpro.hu/i/labdarugas/all"))
	defer s.Close()
	assert.Equal(t, []string{"https://sports2.tippmixpro.hu/labdarugas/all"}, r.navigated)

	snap, err := s.PollOnce(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "55", snap.Markets[0].ID())
	assert.Len(t, snap.Markets[0].Outcomes, 2)
}

func TestScraperPollOnceNoMarketsYet(t *testing.T) {
	r := &pageRenderer{pages: []string{pageHTML}, noGroup: true}
	s := newTestScraper(r, nil)
	require.NoError(t, s.Open(context.Background(), "https://example.com/all"))
	defer s.Close()

	snap, err := s.PollOnce(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestScraperPollOnceClosed(t *testing.T) {
	s := newTestScraper(&pageRenderer{pages: []string{pageHTML}}, nil)

	_, err := s.PollOnce(context.Background())
	assert.ErrorIs(t, err, browser.ErrNotOpen)
}

func TestScraperStartRequiresOpenSession(t *testing.T) {
	s := newTestScraper(&pageRenderer{pages: []string{pageHTML}}, nil)
	out := filepath.Join(t.TempDir(), "out.json")

	assert.ErrorIs(t, s.Start(time.Second, out), ErrSessionClosed)

	require.NoError(t, s.Open(context.Background(), "https://example.com/all"))
	defer s.Close()
	assert.ErrorIs(t, s.Start(0, out), poller.ErrInvalidInterval)
	assert.ErrorIs(t, s.Start(time.Second, ""), ErrNoDestination)
	assert.False(t, s.Running())
}

func TestScraperStartPersistsAndSurvivesErrors(t *testing.T) {
	r := &pageRenderer{pages: []string{pageHTML, "", pageHTML}}

	var mu sync.Mutex
	var kinds []poller.EventKind
	done := make(chan struct{})
	handler := poller.EventHandlerFunc(func(e poller.Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, e.Kind)
		if len(kinds) == 3 {
			close(done)
		}
	})

	s := newTestScraper(r, handler)
	out := filepath.Join(t.TempDir(), "scraped_data.json")
	require.NoError(t, s.Open(context.Background(), "https://example.com/all"))

	require.NoError(t, s.Start(15*time.Millisecond, out))
	assert.True(t, s.Running())
	assert.ErrorIs(t, s.Start(15*time.Millisecond, out), poller.ErrAlreadyRunning)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for passes")
	}
	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.Running())
	assert.True(t, s.IsOpen(), "stop must not close the session")

	mu.Lock()
	assert.Equal(t, []poller.EventKind{poller.EventSuccess, poller.EventError, poller.EventSuccess}, kinds[:3])
	mu.Unlock()

	snap, err := persist.Read(out)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "1X2", snap.Markets[0].Legend)

	s.Close()
	assert.False(t, s.IsOpen())
	assert.True(t, r.closed)
}

func TestScraperCloseTwice(t *testing.T) {
	s := newTestScraper(&pageRenderer{pages: []string{pageHTML}}, nil)
	require.NoError(t, s.Open(context.Background(), "https://example.com/all"))

	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}
