// internal/api/handler/settings_test.go
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/notifier"
	"github.com/newthinker/pulse/internal/scheduler"
	"github.com/newthinker/pulse/internal/source"
	"github.com/newthinker/pulse/internal/state"
	"github.com/newthinker/pulse/internal/stats"
	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T) (*scheduler.Scheduler, *source.Adapter) {
	t.Helper()
	adapter := source.NewAdapter(
		source.NewRemote("http://127.0.0.1:0", 0),
		source.NewMock(),
		zap.NewNop(),
	)
	sched := scheduler.New(scheduler.Config{
		Asset:     "EURUSD",
		OTC:       true,
		Timeframe: core.Expiry1m,
	}, adapter, state.NewStore(10), notifier.NewRegistry(), stats.NewTracker(), nil, zap.NewNop())
	return sched, adapter
}

func TestSettingsHandler_Get(t *testing.T) {
	sched, _ := newTestScheduler(t)
	h := NewSettingsHandler(sched)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest("GET", "/api/settings", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data settingsPayload `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.Asset != "EURUSD" || !resp.Data.OTC || resp.Data.Timeframe != "1m" {
		t.Errorf("settings = %+v", resp.Data)
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	sched, _ := newTestScheduler(t)
	h := NewSettingsHandler(sched)

	body := `{"asset":"GBPUSD","otc":false,"timeframe":"5m"}`
	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest("POST", "/api/settings", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	cfg := sched.Config()
	if cfg.Asset != "GBPUSD" || cfg.OTC || cfg.Timeframe != core.Expiry5m {
		t.Errorf("scheduler config = %+v", cfg)
	}
}

func TestSettingsHandler_Update_Invalid(t *testing.T) {
	sched, _ := newTestScheduler(t)
	h := NewSettingsHandler(sched)

	tests := []struct {
		name string
		body string
	}{
		{"missing asset", `{"timeframe":"1m"}`},
		{"bad timeframe", `{"asset":"EURUSD","timeframe":"2h"}`},
		{"malformed body", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Update(w, httptest.NewRequest("POST", "/api/settings", strings.NewReader(tt.body)))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}

	if cfg := sched.Config(); cfg.Asset != "EURUSD" {
		t.Errorf("rejected update must not change config, got %+v", cfg)
	}
}
