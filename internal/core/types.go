package core

import "time"

// Status is the lifecycle flag of a signal.
type Status string

const (
	StatusActive  Status = "active"
	StatusWaiting Status = "waiting"
	StatusPaused  Status = "paused"
)

// Direction is the recommended option side.
type Direction string

const (
	DirectionCall Direction = "CALL"
	DirectionPut  Direction = "PUT"
)

// Expiry is the option expiry window.
type Expiry string

const (
	Expiry1m  Expiry = "1m"
	Expiry5m  Expiry = "5m"
	Expiry15m Expiry = "15m"
)

// IsValid reports whether the expiry is one of the supported windows.
func (e Expiry) IsValid() bool {
	switch e {
	case Expiry1m, Expiry5m, Expiry15m:
		return true
	}
	return false
}

// Technical is the indicator snapshot carried alongside a signal.
// Values come from the upstream feed or the mock generator; PULSE
// never computes them itself.
type Technical struct {
	RSI     float64 `json:"rsi"`
	MACD    float64 `json:"macd"`
	Pattern string  `json:"pattern,omitempty"`
	Stoch   float64 `json:"stoch,omitempty"`
}

// Signal represents one trading recommendation snapshot. A signal is
// superseded whole on every refresh; it is never merged with its
// predecessor.
type Signal struct {
	ID         string    `json:"id,omitempty"`
	Status     Status    `json:"status"`
	Direction  Direction `json:"direction,omitempty"`
	Confidence int       `json:"confidence"`
	Price      Price     `json:"price"`
	Expiry     Expiry    `json:"expiry"`
	Asset      string    `json:"asset"`
	IsOTC      bool      `json:"is_otc"`
	Technical  Technical `json:"technical"`
	Source     string    `json:"source,omitempty"` // "remote", "mock" or "stream"
	Timestamp  time.Time `json:"timestamp"`
}

// IsActive reports whether the signal is tradable. Direction and price
// are meaningful only for active signals.
func (s Signal) IsActive() bool {
	return s.Status == StatusActive
}

// IsValid checks the signal has the fields every consumer relies on.
func (s Signal) IsValid() bool {
	if s.Asset == "" || s.Status == "" {
		return false
	}
	if s.IsActive() && s.Direction != DirectionCall && s.Direction != DirectionPut {
		return false
	}
	return true
}

// ConnectionState describes the outcome of the most recent fetch
// against the live signal feed.
type ConnectionState struct {
	Connected bool      `json:"connected"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Candle is one OHLC bar of the chart series.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  Price     `json:"open"`
	High  Price     `json:"high"`
	Low   Price     `json:"low"`
	Close Price     `json:"close"`
}
