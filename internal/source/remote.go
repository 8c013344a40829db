package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/newthinker/pulse/internal/core"
)

// DefaultTimeout bounds a single fetch against the remote feed.
const DefaultTimeout = 8 * time.Second

// validAsset matches instrument names like EURUSD or EURUSD-OTC
var validAsset = regexp.MustCompile(`^[A-Z0-9]{2,12}(-OTC)?$`)

// validateAsset checks if an asset name has valid format
func validateAsset(asset string) error {
	if asset == "" {
		return fmt.Errorf("asset cannot be empty")
	}
	if !validAsset.MatchString(asset) {
		return fmt.Errorf("invalid asset format: %s", asset)
	}
	return nil
}

// Remote fetches signals from the upstream signal service.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a remote source against the given base URL.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Name() string { return "remote" }

// Fetch requests the current signal for the instrument. The payload is
// authoritative; absent fields are filled from the request so any of
// the feed's schema drafts parse.
func (r *Remote) Fetch(ctx context.Context, req Request) (core.Signal, error) {
	if err := validateAsset(req.Asset); err != nil {
		return core.Signal{}, core.WrapError(core.ErrSourceFailed, err)
	}

	url := fmt.Sprintf("%s/signals/%s?otc=%t&timeframe=%s", r.baseURL, req.Asset, req.OTC, req.Timeframe)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.Signal{}, core.WrapError(core.ErrSourceFailed, err)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return core.Signal{}, core.WrapError(core.ErrSourceTimeout, err)
		}
		return core.Signal{}, core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.Signal{}, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var payload signalPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return core.Signal{}, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("decoding response: %w", err))
	}

	return payload.toSignal(req), nil
}

// FetchTechnical requests the standalone indicator snapshot.
func (r *Remote) FetchTechnical(ctx context.Context, asset string, otc bool) (*TechnicalSnapshot, error) {
	if err := validateAsset(asset); err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}

	url := fmt.Sprintf("%s/signals/%s/technical?otc=%t", r.baseURL, asset, otc)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var snap TechnicalSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("decoding response: %w", err))
	}

	return &snap, nil
}

// TechnicalSnapshot is the payload of the technical endpoint.
type TechnicalSnapshot struct {
	CurrentPrice core.Price `json:"current_price"`
	Technical    struct {
		RSI       float64 `json:"rsi"`
		RSIStatus string  `json:"rsi_status,omitempty"`
		Trend     string  `json:"trend,omitempty"`
		MACD      float64 `json:"macd"`
		Pattern   string  `json:"pattern,omitempty"`
	} `json:"technical"`
}

// signalPayload is the remote feed's signal shape. The historical feed
// drafts disagree on field names, so both expiry spellings are accepted
// and every field may be absent.
type signalPayload struct {
	Status     string          `json:"status"`
	Direction  string          `json:"direction"`
	Confidence int             `json:"confidence"`
	Price      core.Price      `json:"price"`
	Expiry     string          `json:"expiry"`
	Expire     string          `json:"expire"` // legacy spelling
	Asset      string          `json:"asset"`
	IsOTC      *bool           `json:"is_otc"`
	Technical  *core.Technical `json:"technical"`
	Timestamp  *time.Time      `json:"timestamp"`
}

func (p signalPayload) toSignal(req Request) core.Signal {
	sig := core.Signal{
		Status:     core.Status(p.Status),
		Direction:  core.Direction(p.Direction),
		Confidence: p.Confidence,
		Price:      p.Price,
		Asset:      p.Asset,
		IsOTC:      req.OTC,
		Source:     "remote",
		Timestamp:  time.Now(),
	}

	if sig.Status == "" {
		sig.Status = core.StatusWaiting
	}
	if sig.Asset == "" {
		sig.Asset = req.Asset
	}
	if p.IsOTC != nil {
		sig.IsOTC = *p.IsOTC
	}
	if p.Technical != nil {
		sig.Technical = *p.Technical
	}
	if p.Timestamp != nil {
		sig.Timestamp = *p.Timestamp
	}

	switch {
	case p.Expiry != "":
		sig.Expiry = core.Expiry(p.Expiry)
	case p.Expire != "":
		sig.Expiry = core.Expiry(p.Expire)
	default:
		sig.Expiry = req.Timeframe
	}

	return sig
}
