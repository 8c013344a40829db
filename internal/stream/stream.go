// Package stream consumes the optional realtime push feed. Signals
// arriving over the socket are written through the same latest-signal
// slot as the polling scheduler, so there is exactly one authoritative
// update path for readers.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/metrics"
	"github.com/newthinker/pulse/internal/state"
	"go.uber.org/zap"
)

// DefaultReconnectWait is the pause between reconnect attempts.
const DefaultReconnectWait = 5 * time.Second

// Config holds stream client configuration.
type Config struct {
	URL           string
	ReconnectWait time.Duration
}

// envelope is the wire format of the push feed.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client maintains the socket connection and feeds events into shared
// state.
type Client struct {
	cfg     Config
	store   *state.Store
	metrics *metrics.Registry
	logger  *zap.Logger
	dialer  *websocket.Dialer

	connected atomic.Bool

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a stream client. The metrics registry may be nil.
func New(cfg Config, store *state.Store, reg *metrics.Registry, logger *zap.Logger) *Client {
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = DefaultReconnectWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:     cfg,
		store:   store,
		metrics: reg,
		logger:  logger,
		dialer:  websocket.DefaultDialer,
	}
}

// Start launches the consume loop with automatic reconnect.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("stream client already running")
	}
	if c.cfg.URL == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("stream url is empty"))
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel

	c.wg.Add(1)
	go c.run(loopCtx)

	return nil
}

// Stop tears the client down. After Stop returns the client performs no
// further shared-state mutation.
func (c *Client) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	c.mu.Unlock()

	cancel()
	c.wg.Wait()

	c.mu.Lock()
	c.running = false
	c.cancel = nil
	c.mu.Unlock()
}

// Connected reports whether the socket is currently up.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

func (c *Client) run(ctx context.Context) {
	defer c.wg.Done()

	for {
		if err := c.consume(ctx); err != nil && ctx.Err() == nil {
			c.logger.Warn("stream disconnected", zap.Error(err))
			c.store.SetConnection(core.ConnectionState{
				Connected: false,
				Error:     "realtime feed disconnected, awaiting reconnect",
				CheckedAt: time.Now(),
			})
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.ReconnectWait):
		}
	}
}

func (c *Client) consume(ctx context.Context) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return core.WrapError(core.ErrStreamClosed, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	c.connected.Store(true)
	defer c.connected.Store(false)

	c.store.SetConnection(core.ConnectionState{Connected: true, CheckedAt: time.Now()})
	c.recordEvent("connect")
	c.logger.Info("stream connected", zap.String("url", c.cfg.URL))

	// Unblock the read loop when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return core.WrapError(core.ErrStreamClosed, err)
		}
		if ctx.Err() != nil {
			return nil
		}
		c.handle(env)
	}
}

func (c *Client) handle(env envelope) {
	c.recordEvent(env.Event)

	switch env.Event {
	case "connect":
		c.store.SetConnection(core.ConnectionState{Connected: true, CheckedAt: time.Now()})

	case "disconnect":
		c.store.SetConnection(core.ConnectionState{
			Connected: false,
			Error:     "realtime feed reported disconnect",
			CheckedAt: time.Now(),
		})

	case "new_signal":
		var sig core.Signal
		if err := json.Unmarshal(env.Data, &sig); err != nil {
			c.logger.Warn("dropping malformed stream signal", zap.Error(err))
			return
		}
		sig.Source = "stream"
		if !sig.IsValid() {
			c.logger.Warn("dropping invalid stream signal", zap.String("asset", sig.Asset))
			return
		}
		c.store.Publish(sig)

	default:
		c.logger.Debug("ignoring unknown stream event", zap.String("event", env.Event))
	}
}

func (c *Client) recordEvent(event string) {
	if c.metrics != nil {
		c.metrics.RecordStreamEvent(event)
	}
}
