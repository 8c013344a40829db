package source

import (
	"context"
	"strings"
	"testing"

	"github.com/newthinker/pulse/internal/core"
)

func TestMock_ImplementsSource(t *testing.T) {
	var _ Source = (*Mock)(nil)
}

func TestMock_Fetch_Ranges(t *testing.T) {
	m := NewMock()
	req := Request{Asset: "EURUSD", Timeframe: core.Expiry1m}

	for i := 0; i < 500; i++ {
		sig, err := m.Fetch(context.Background(), req)
		if err != nil {
			t.Fatalf("mock fetch should never fail: %v", err)
		}

		if sig.Confidence < 80 || sig.Confidence > 90 {
			t.Fatalf("confidence %d outside [80,90]", sig.Confidence)
		}
		if sig.Direction != core.DirectionCall && sig.Direction != core.DirectionPut {
			t.Fatalf("unexpected direction %q", sig.Direction)
		}
		if sig.Technical.RSI < 30 || sig.Technical.RSI > 70 {
			t.Fatalf("rsi %.2f outside [30,70]", sig.Technical.RSI)
		}
		if sig.Technical.Stoch < 20 || sig.Technical.Stoch > 80 {
			t.Fatalf("stoch %.2f outside [20,80]", sig.Technical.Stoch)
		}
		if sig.Status != core.StatusActive {
			t.Fatalf("mock signals should be active, got %q", sig.Status)
		}
	}
}

func TestMock_Fetch_PriceFiveDigits(t *testing.T) {
	m := NewMock()
	sig, _ := m.Fetch(context.Background(), Request{Asset: "EURUSD", Timeframe: core.Expiry5m})

	s := sig.Price.String()
	parts := strings.Split(s, ".")
	if len(parts) != 2 || len(parts[1]) != 5 {
		t.Errorf("price %s does not have exactly 5 fractional digits", s)
	}

	// Perturbed around the EURUSD baseline.
	if sig.Price.Float() < 1.0850 || sig.Price.Float() > 1.0860 {
		t.Errorf("price %s outside baseline band", s)
	}
}

func TestMock_Fetch_PatternFromFixedSet(t *testing.T) {
	m := NewMock()
	known := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		known[p] = true
	}

	for i := 0; i < 100; i++ {
		sig, _ := m.Fetch(context.Background(), Request{Asset: "EURUSD", Timeframe: core.Expiry1m})
		if !known[sig.Technical.Pattern] {
			t.Fatalf("pattern %q not in the fixed set", sig.Technical.Pattern)
		}
	}
}

func TestMock_Fetch_EchoesRequest(t *testing.T) {
	m := NewMock()
	req := Request{Asset: "EURUSD-OTC", OTC: true, Timeframe: core.Expiry15m}

	sig, _ := m.Fetch(context.Background(), req)
	if sig.Asset != "EURUSD-OTC" || !sig.IsOTC || sig.Expiry != core.Expiry15m {
		t.Errorf("mock signal should echo the request, got %+v", sig)
	}
	if sig.Source != "mock" {
		t.Errorf("expected source mock, got %q", sig.Source)
	}
}
