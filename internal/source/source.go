// Package source acquires signal snapshots, preferring the remote feed
// and degrading to a local mock generator when the feed is unreachable.
package source

import (
	"context"

	"github.com/newthinker/pulse/internal/core"
)

// Request identifies the instrument a signal is wanted for.
type Request struct {
	Asset     string
	OTC       bool
	Timeframe core.Expiry
}

// Source produces one signal snapshot per request.
type Source interface {
	// Name returns the unique identifier for this source
	Name() string

	// Fetch obtains a signal for the requested instrument.
	Fetch(ctx context.Context, req Request) (core.Signal, error)
}
