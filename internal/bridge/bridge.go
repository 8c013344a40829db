// Package bridge turns an active signal into an executable trade
// ticket: a single-line descriptor the user pastes into the external
// trading site.
package bridge

import (
	"fmt"

	"github.com/newthinker/pulse/internal/core"
)

// DefaultTradeURL is the external trading site opened after copying.
const DefaultTradeURL = "https://pocketoption.com/en/sign-in"

// Ticket is a formatted, ready-to-paste trade descriptor.
type Ticket struct {
	Text     string `json:"text"`
	TradeURL string `json:"trade_url"`
}

// Bridge formats trade tickets.
type Bridge struct {
	tradeURL string
}

// New creates a bridge pointing at the given trading site.
func New(tradeURL string) *Bridge {
	if tradeURL == "" {
		tradeURL = DefaultTradeURL
	}
	return &Bridge{tradeURL: tradeURL}
}

// Execute builds a ticket from the signal. Only active signals are
// executable; anything else is rejected without side effects.
func (b *Bridge) Execute(sig core.Signal) (Ticket, error) {
	if !sig.IsActive() {
		return Ticket{}, core.ErrNoActiveSignal
	}

	text := fmt.Sprintf("%s %s %s @ %s (Conf: %d%%)",
		sig.Direction, sig.Asset, sig.Expiry, sig.Price, sig.Confidence)

	return Ticket{Text: text, TradeURL: b.tradeURL}, nil
}
