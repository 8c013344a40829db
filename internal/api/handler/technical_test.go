// internal/api/handler/technical_test.go
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newthinker/pulse/internal/core"
)

func TestTechnicalHandler_FallsBackToGenerated(t *testing.T) {
	sched, adapter := newTestScheduler(t)
	h := NewTechnicalHandler(adapter, sched)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest("GET", "/api/technical", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Asset     string `json:"asset"`
			Technical struct {
				Technical core.Technical `json:"technical"`
			} `json:"technical"`
			Connection core.ConnectionState `json:"connection"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	// Scheduler defaults fill the asset when the query omits it.
	if resp.Data.Asset != "EURUSD" {
		t.Errorf("asset = %q, want EURUSD", resp.Data.Asset)
	}
	if resp.Data.Connection.Connected {
		t.Error("unreachable feed must report disconnected")
	}
	rsi := resp.Data.Technical.Technical.RSI
	if rsi < 30 || rsi > 70 {
		t.Errorf("generated RSI = %f, want within [30,70]", rsi)
	}
}

func TestTechnicalHandler_AssetOverride(t *testing.T) {
	sched, adapter := newTestScheduler(t)
	h := NewTechnicalHandler(adapter, sched)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest("GET", "/api/technical?asset=GBPUSD&otc=false", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Asset string `json:"asset"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Asset != "GBPUSD" {
		t.Errorf("asset = %q, want GBPUSD", resp.Data.Asset)
	}
}
