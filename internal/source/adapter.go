package source

import (
	"context"
	"errors"
	"time"

	"github.com/newthinker/pulse/internal/core"
	"go.uber.org/zap"
)

// Adapter tries the remote feed first and falls back to the mock
// generator on any failure. Failure never escapes the adapter; the
// caller always gets a signal plus the connection state describing how
// it was obtained.
type Adapter struct {
	remote Source
	mock   Source
	logger *zap.Logger
}

// NewAdapter creates an adapter over the given remote and mock sources.
func NewAdapter(remote, mock Source, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{remote: remote, mock: mock, logger: logger}
}

// Fetch obtains a signal for the request. A remote payload is returned
// verbatim with a connected state; on any remote failure a generated
// signal is returned with a disconnected state carrying a soft error.
func (a *Adapter) Fetch(ctx context.Context, req Request) (core.Signal, core.ConnectionState) {
	sig, err := a.remote.Fetch(ctx, req)
	if err == nil {
		return sig, core.ConnectionState{Connected: true, CheckedAt: time.Now()}
	}

	a.logger.Debug("remote fetch failed, falling back to mock",
		zap.String("asset", req.Asset),
		zap.Error(err),
	)

	sig, mockErr := a.mock.Fetch(ctx, req)
	if mockErr != nil {
		// The mock never fails; guard anyway so the contract holds.
		sig = core.Signal{
			Status:    core.StatusWaiting,
			Asset:     req.Asset,
			IsOTC:     req.OTC,
			Expiry:    req.Timeframe,
			Source:    "mock",
			Timestamp: time.Now(),
		}
	}

	return sig, core.ConnectionState{
		Connected: false,
		Error:     humanizeFetchError(err),
		CheckedAt: time.Now(),
	}
}

// Technical returns the indicator snapshot from the remote feed, or a
// snapshot derived from a mock signal when the feed is unreachable.
func (a *Adapter) Technical(ctx context.Context, asset string, otc bool) (*TechnicalSnapshot, core.ConnectionState) {
	if r, ok := a.remote.(*Remote); ok {
		snap, err := r.FetchTechnical(ctx, asset, otc)
		if err == nil {
			return snap, core.ConnectionState{Connected: true, CheckedAt: time.Now()}
		}
		a.logger.Debug("technical fetch failed, falling back to mock",
			zap.String("asset", asset),
			zap.Error(err),
		)
	}

	sig, _ := a.mock.Fetch(ctx, Request{Asset: asset, OTC: otc, Timeframe: core.Expiry1m})
	snap := &TechnicalSnapshot{CurrentPrice: sig.Price}
	snap.Technical.RSI = sig.Technical.RSI
	snap.Technical.MACD = sig.Technical.MACD
	snap.Technical.Pattern = sig.Technical.Pattern

	return snap, core.ConnectionState{
		Connected: false,
		Error:     "live feed unavailable, serving generated data",
		CheckedAt: time.Now(),
	}
}

func humanizeFetchError(err error) string {
	if errors.Is(err, core.ErrSourceTimeout) {
		return "signal service timed out, serving generated signal"
	}
	return "signal service unreachable, serving generated signal"
}
