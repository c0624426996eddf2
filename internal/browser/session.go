package browser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/henrriusdev/tippscrape/internal/urlnorm"
)

// Session keeps one page open across many extraction passes.
//
// Lifecycle calls are serialized by an internal mutex, so Open, Snapshot,
// WaitPresent and Close may be invoked from different goroutines.
type Session struct {
	opts   Options
	launch Launcher
	logger *slog.Logger

	mu       sync.Mutex
	url      string
	renderer Renderer
}

// NewSession creates a closed Session. A nil launch uses ChromeLauncher.
func NewSession(opts Options, launch Launcher) *Session {
	opts.applyDefaults()
	if launch == nil {
		launch = ChromeLauncher
	}
	return &Session{
		opts:   opts,
		launch: launch,
		logger: opts.Logger,
	}
}

// Open starts the renderer and loads the normalized form of url. On failure
// the session stays closed and any started renderer is released.
func (s *Session) Open(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := urlnorm.Normalize(url)
	if s.renderer != nil {
		return &SessionError{Op: "open", URL: target, Err: ErrAlreadyOpen}
	}

	r, err := s.launch(ctx, s.opts)
	if err != nil {
		return &SessionError{Op: "open", URL: target, Err: err}
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.opts.LoadTimeout)
	defer cancel()

	if err := r.Navigate(loadCtx, target); err != nil {
		s.release(r)
		return &SessionError{Op: "open", URL: target, Err: err}
	}

	s.url = target
	s.renderer = r
	s.logger.Info("page opened", "url", target)
	return nil
}

// IsOpen reports whether a page is currently open.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer != nil
}

// URL returns the normalized URL of the open page, or "" when closed.
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Snapshot returns the current serialized markup of the open page,
// including any script mutations since it was loaded.
func (s *Session) Snapshot(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.renderer == nil {
		return "", &SessionError{Op: "snapshot", Err: ErrNotOpen}
	}
	markup, err := s.renderer.HTML(ctx)
	if err != nil {
		return "", &SessionError{Op: "snapshot", URL: s.url, Err: err}
	}
	return markup, nil
}

// WaitPresent blocks until an element matching selector exists on the open
// page or ctx is done.
func (s *Session) WaitPresent(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.renderer == nil {
		return &SessionError{Op: "wait", Err: ErrNotOpen}
	}
	if err := s.renderer.WaitPresent(ctx, selector); err != nil {
		return &SessionError{Op: "wait", URL: s.url, Err: err}
	}
	return nil
}

// Close releases the renderer. Calling it on a closed session is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.renderer == nil {
		return
	}
	s.release(s.renderer)
	s.logger.Info("page closed", "url", s.url)
	s.renderer = nil
	s.url = ""
}

// release closes r and swallows the error; a failing release must not
// block shutdown.
func (s *Session) release(r Renderer) {
	if err := r.Close(); err != nil {
		s.logger.Debug("renderer release failed", "err", err)
	}
}
