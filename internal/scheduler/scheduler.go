// Package scheduler drives the signal refresh cycle: on a fixed
// interval it asks the source adapter for the current signal, publishes
// it to shared state, forwards active signals to the notifiers, and
// updates the running stats.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/metrics"
	"github.com/newthinker/pulse/internal/notifier"
	"github.com/newthinker/pulse/internal/source"
	"github.com/newthinker/pulse/internal/state"
	"github.com/newthinker/pulse/internal/stats"
	"go.uber.org/zap"
)

// DefaultInterval is the refresh period when none is configured.
const DefaultInterval = 30 * time.Second

// Config holds scheduler configuration.
type Config struct {
	Interval  time.Duration
	Asset     string
	OTC       bool
	Timeframe core.Expiry
}

// Scheduler owns the refresh loop for one instrument at a time.
type Scheduler struct {
	adapter   *source.Adapter
	store     *state.Store
	notifiers *notifier.Registry
	tracker   *stats.Tracker
	metrics   *metrics.Registry
	logger    *zap.Logger

	mu      sync.Mutex
	cfg     Config
	running bool
	parent  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler. The metrics registry may be nil.
func New(cfg Config, adapter *source.Adapter, store *state.Store, notifiers *notifier.Registry, tracker *stats.Tracker, reg *metrics.Registry, logger *zap.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeframe == "" {
		cfg.Timeframe = core.Expiry1m
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		adapter:   adapter,
		store:     store,
		notifiers: notifiers,
		tracker:   tracker,
		metrics:   reg,
		logger:    logger,
		cfg:       cfg,
	}
}

// Start arms the refresh loop. It returns an error if the scheduler is
// already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.running = true
	s.parent = ctx
	s.cancel = cancel

	s.logger.Info("scheduler starting",
		zap.String("asset", s.cfg.Asset),
		zap.Bool("otc", s.cfg.OTC),
		zap.String("timeframe", string(s.cfg.Timeframe)),
		zap.Duration("interval", s.cfg.Interval),
	)

	s.wg.Add(1)
	go s.run(loopCtx, s.cfg)

	return nil
}

// Stop tears the loop down. When Stop returns, no further shared-state
// mutation from this scheduler instance can occur.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Info("scheduler stopped")
}

// Reconfigure tears down the current loop and arms a fresh one with the
// new instrument parameters. The old and new loops never overlap.
func (s *Scheduler) Reconfigure(asset string, otc bool, timeframe core.Expiry) error {
	if !timeframe.IsValid() {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unsupported timeframe %q", timeframe))
	}

	s.mu.Lock()
	wasRunning := s.running
	parent := s.parent
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}

	s.mu.Lock()
	s.cfg.Asset = asset
	s.cfg.OTC = otc
	s.cfg.Timeframe = timeframe
	s.mu.Unlock()

	if wasRunning {
		return s.Start(parent)
	}
	return nil
}

// Config returns the current instrument parameters.
func (s *Scheduler) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Running reports whether the loop is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context, cfg Config) {
	defer s.wg.Done()

	// Initial refresh so the dashboard is populated before the first tick.
	s.refresh(ctx, cfg)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx, cfg)
		}
	}
}

// refresh runs one cycle. Adapter failures never stop the loop; the
// next tick always happens regardless of this one's outcome.
func (s *Scheduler) refresh(ctx context.Context, cfg Config) {
	start := time.Now()

	req := source.Request{Asset: cfg.Asset, OTC: cfg.OTC, Timeframe: cfg.Timeframe}
	sig, conn := s.adapter.Fetch(ctx, req)

	// A cancelled loop must not touch shared state.
	if ctx.Err() != nil {
		return
	}

	s.store.SetConnection(conn)
	published := s.store.Publish(sig)
	s.tracker.Record(published)

	if s.metrics != nil {
		s.metrics.RecordFetch(published.Source)
		s.metrics.RecordPublish(string(published.Direction), string(published.Status))
		s.metrics.RecordRefresh(time.Since(start).Seconds())
	}

	s.logger.Debug("signal refreshed",
		zap.String("asset", published.Asset),
		zap.String("status", string(published.Status)),
		zap.String("source", published.Source),
		zap.Bool("connected", conn.Connected),
	)

	if published.IsActive() {
		s.dispatch(published)
	}
}

// dispatch forwards the signal to every notifier, best-effort. Failures
// are logged and never retried.
func (s *Scheduler) dispatch(sig core.Signal) {
	if s.notifiers == nil {
		return
	}

	errs := s.notifiers.NotifyAll(sig)
	for name, err := range errs {
		s.logger.Error("notifier failed",
			zap.String("notifier", name),
			zap.Error(err),
		)
	}

	if s.metrics != nil {
		for _, n := range s.notifiers.GetAll() {
			status := "ok"
			if errs[n.Name()] != nil {
				status = "error"
			}
			s.metrics.RecordDispatch(n.Name(), status)
		}
	}

	s.logger.Info("signal dispatched",
		zap.String("asset", sig.Asset),
		zap.String("direction", string(sig.Direction)),
		zap.Int("confidence", sig.Confidence),
		zap.Int("notifiers", len(s.notifiers.GetAll())),
		zap.Int("errors", len(errs)),
	)
}

// RunOnce performs a single refresh cycle (useful for testing and the
// one-shot CLI path).
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()
	s.refresh(ctx, cfg)
}
