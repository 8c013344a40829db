package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("expected registry")
	}

	// Registering twice would panic; NewRegistry must be self-contained.
	r2 := NewRegistry()
	if r2 == nil {
		t.Fatal("expected second registry")
	}
}

func TestRegistry_BusinessMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordFetch("remote")
	r.RecordFetch("mock")
	r.RecordPublish("CALL", "active")
	r.RecordDispatch("telegram", "ok")
	r.RecordDispatch("webhook", "error")
	r.RecordRefresh(0.125)
	r.RecordStreamEvent("new_signal")
	r.RecordOutcome("win")
	r.RecordExecution("ok")

	body := scrape(t, r)

	for _, want := range []string{
		`pulse_signal_fetches_total{source="remote"} 1`,
		`pulse_signal_fetches_total{source="mock"} 1`,
		`pulse_source_fallbacks_total 1`,
		`pulse_signals_published_total{direction="CALL",status="active"} 1`,
		`pulse_notifier_dispatches_total{notifier="telegram",status="ok"} 1`,
		`pulse_notifier_dispatches_total{notifier="webhook",status="error"} 1`,
		`pulse_stream_events_total{event="new_signal"} 1`,
		`pulse_outcomes_total{result="win"} 1`,
		`pulse_executions_total{status="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestStatusToString(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{100, "1xx"},
	}
	for _, tt := range tests {
		if got := statusToString(tt.status); got != tt.want {
			t.Errorf("statusToString(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestHTTPMiddleware(t *testing.T) {
	r := NewRegistry()

	handler := HTTPMiddleware(r)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/signal/latest", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("middleware must pass status through, got %d", rec.Code)
	}

	body := scrape(t, r)
	if !strings.Contains(body, `http_requests_total{method="GET",path="/api/signal/latest",status="4xx"} 1`) {
		t.Error("request not recorded")
	}
}

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}
