package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/henrriusdev/tippscrape/internal/market"
	"github.com/henrriusdev/tippscrape/internal/metrics"
)

var (
	ErrInvalidInterval = errors.New("poll interval must be positive")
	ErrAlreadyRunning  = errors.New("poller already running")
)

// SnapshotSource runs one extraction pass. A nil snapshot with a nil error
// means the page has no markets yet.
type SnapshotSource interface {
	PollOnce(ctx context.Context) (*market.Snapshot, error)
}

// SnapshotSourceFunc is a function adapter for SnapshotSource.
type SnapshotSourceFunc func(ctx context.Context) (*market.Snapshot, error)

func (f SnapshotSourceFunc) PollOnce(ctx context.Context) (*market.Snapshot, error) {
	return f(ctx)
}

// SnapshotSink stores a non-empty snapshot.
type SnapshotSink interface {
	WriteSnapshot(snap market.Snapshot) error
}

// Config holds poller configuration.
type Config struct {
	Interval    time.Duration // Time between pass starts (default: 30s)
	PassTimeout time.Duration // Upper bound for one pass (default: 2m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    30 * time.Second,
		PassTimeout: 2 * time.Minute,
	}
}

// Poller drives periodic extraction passes on a dedicated goroutine.
type Poller struct {
	cfg     Config
	source  SnapshotSource
	sink    SnapshotSink
	handler EventHandler
	logger  *slog.Logger

	mu       sync.Mutex
	running  bool // until the worker has exited
	stopping bool
	stop     chan struct{}
	done     chan struct{}
}

// New creates a new Poller. handler may be nil.
func New(cfg Config, source SnapshotSource, sink SnapshotSink, handler EventHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PassTimeout <= 0 {
		cfg.PassTimeout = DefaultConfig().PassTimeout
	}
	return &Poller{
		cfg:     cfg,
		source:  source,
		sink:    sink,
		handler: handler,
		logger:  logger,
	}
}

// Start begins the polling loop. The first pass runs immediately.
//
// ctx only carries values into each pass; cancelling it does not stop the
// loop, use Stop.
func (p *Poller) Start(ctx context.Context) error {
	if p.cfg.Interval <= 0 {
		return ErrInvalidInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}
	p.running = true
	p.stopping = false
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go p.run(context.WithoutCancel(ctx), p.stop, p.done)

	p.logger.Info("scraping started", "interval", p.cfg.Interval)
	return nil
}

// Stop requests the loop to end and waits for an in-flight pass to finish,
// or for ctx to be done. If ctx ends first the poller stays Running until
// the pass returns, and Start keeps failing with ErrAlreadyRunning. Calling
// Stop on an idle poller is a no-op.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	if !p.stopping {
		p.stopping = true
		close(p.stop)
	}
	done := p.done
	p.mu.Unlock()

	select {
	case <-done:
		p.logger.Info("scraping stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether the worker is active, including a worker that was
// asked to stop but is still finishing its pass.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// run is the main polling loop.
func (p *Poller) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
		close(done)
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for pass := 1; ; pass++ {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		// The stop request may have raced with the timer.
		select {
		case <-stop:
			return
		default:
		}

		start := time.Now()
		p.runPass(ctx, pass)

		wait := p.cfg.Interval - time.Since(start)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

// runPass executes one pass and reports it. It never panics the loop on a
// failing source or sink.
func (p *Poller) runPass(ctx context.Context, pass int) {
	ev := Event{
		ID:   uuid.New(),
		Pass: pass,
	}

	start := time.Now()
	passCtx, cancel := context.WithTimeout(ctx, p.cfg.PassTimeout)
	snap, err := p.pollOnce(passCtx)
	cancel()

	switch {
	case err != nil:
		ev.Kind = EventError
		ev.Err = err
		p.logger.Warn("error during scraping", "pass", ev.Pass, "err", err)
	case snap == nil || snap.Len() == 0:
		ev.Kind = EventEmpty
		p.logger.Info("no betting options found yet", "pass", ev.Pass)
	default:
		ev.Markets = snap.Len()
		if err := p.write(*snap); err != nil {
			ev.Kind = EventPersistError
			ev.Err = err
			p.logger.Warn("error saving data", "pass", ev.Pass, "err", err)
		} else {
			ev.Kind = EventSuccess
			p.logger.Info("data scraped and saved", "pass", ev.Pass, "markets", ev.Markets)
		}
	}

	ev.At = time.Now()
	ev.Duration = ev.At.Sub(start)
	metrics.ObservePass(ev.Kind.String(), ev.Markets, ev.Duration)

	p.report(ev)
}

func (p *Poller) report(ev Event) {
	if p.handler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("event handler panicked", "pass", ev.Pass, "panic", r)
		}
	}()
	p.handler.HandleEvent(ev)
}

func (p *Poller) pollOnce(ctx context.Context) (snap *market.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return p.source.PollOnce(ctx)
}

func (p *Poller) write(snap market.Snapshot) (err error) {
	if p.sink == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return p.sink.WriteSnapshot(snap)
}
