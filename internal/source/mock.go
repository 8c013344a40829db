package source

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/newthinker/pulse/internal/core"
)

// Confidence bounds for generated signals.
const (
	mockConfidenceMin = 80
	mockConfidenceMax = 90
)

// patterns is the candlestick label pool for generated signals.
var patterns = []string{
	"Bullish Engulfing",
	"Bearish Engulfing",
	"Hammer",
	"Shooting Star",
	"Doji",
	"Morning Star",
}

// baselines holds per-asset price anchors for the random perturbation.
var baselines = map[string]float64{
	"EURUSD":     1.0850,
	"EURUSD-OTC": 1.0850,
	"GBPUSD":     1.2700,
	"USDJPY":     148.50,
}

const defaultBaseline = 1.0850

// Mock generates structurally valid signals locally. It stands in for
// the remote feed whenever it is unreachable and never fails.
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates a mock source seeded from the clock.
func NewMock() *Mock {
	return &Mock{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *Mock) Name() string { return "mock" }

// Fetch fabricates a high-confidence signal for the instrument. The
// error return exists only to satisfy Source; it is always nil.
func (m *Mock) Fetch(_ context.Context, req Request) (core.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	direction := core.DirectionCall
	if m.rng.Float64() < 0.5 {
		direction = core.DirectionPut
	}

	base, ok := baselines[req.Asset]
	if !ok {
		base = defaultBaseline
	}

	return core.Signal{
		Status:     core.StatusActive,
		Direction:  direction,
		Confidence: mockConfidenceMin + m.rng.Intn(mockConfidenceMax-mockConfidenceMin+1),
		Price:      core.NewPrice(base + m.rng.Float64()*0.001),
		Expiry:     req.Timeframe,
		Asset:      req.Asset,
		IsOTC:      req.OTC,
		Technical: core.Technical{
			RSI:     30 + m.rng.Float64()*40,
			MACD:    (m.rng.Float64()*2 - 1) * 0.0008,
			Pattern: patterns[m.rng.Intn(len(patterns))],
			Stoch:   20 + m.rng.Float64()*60,
		},
		Source:    "mock",
		Timestamp: time.Now(),
	}, nil
}
