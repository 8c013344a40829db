// internal/api/handler/series.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/series"
)

const maxSeriesCount = 1000

// SeriesHandler serves generated candle series for the chart.
type SeriesHandler struct {
	defaultCount int
	defaultStart float64
}

// NewSeriesHandler creates a series handler with configured defaults.
func NewSeriesHandler(count int, startPrice float64) *SeriesHandler {
	if count <= 0 {
		count = 50
	}
	if startPrice <= 0 {
		startPrice = series.DefaultStartPrice
	}
	return &SeriesHandler{defaultCount: count, defaultStart: startPrice}
}

// Get returns a fresh candle series. Query parameters count and start
// override the configured defaults.
func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	count := h.defaultCount
	if s := q.Get("count"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			count = n
		}
	}
	if count > maxSeriesCount {
		count = maxSeriesCount
	}

	start := h.defaultStart
	if s := q.Get("start"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			start = f
		}
	}

	candles := series.Generate(count, start)
	response.JSON(w, http.StatusOK, map[string]any{
		"candles": candles,
		"count":   len(candles),
	})
}
