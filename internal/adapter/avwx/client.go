package avwx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hangarline/avwx-etl/internal/domain"
	"github.com/hangarline/avwx-etl/internal/observability"
)

const userAgent = "avwx-etl/1.0"

// Client fetches METAR and TAF records from the Aviation Weather Center
// data API (aviationweather.gov/api/data).
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Aviation Weather Center API client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchMETAR returns the latest observation for one station. ok is
// false when the API has no current record for the station, which is
// not an error.
func (c *Client) FetchMETAR(ctx context.Context, stationID string) (domain.RawMETAR, bool, error) {
	var records []domain.RawMETAR
	ok, err := c.fetch(ctx, "metar", stationID, &records)
	if err != nil || !ok || len(records) == 0 {
		return domain.RawMETAR{}, false, err
	}
	// The API returns newest first; only the latest record matters.
	return records[0], true, nil
}

// FetchTAF returns the latest forecast for one station.
func (c *Client) FetchTAF(ctx context.Context, stationID string) (domain.RawTAF, bool, error) {
	var records []domain.RawTAF
	ok, err := c.fetch(ctx, "taf", stationID, &records)
	if err != nil || !ok || len(records) == 0 {
		return domain.RawTAF{}, false, err
	}
	return records[0], true, nil
}

func (c *Client) fetch(ctx context.Context, product, stationID string, out any) (bool, error) {
	params := url.Values{
		"ids":    {stationID},
		"format": {"json"},
	}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, product, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s request for %s: %w", product, stationID, err)
	}
	defer resp.Body.Close()
	c.metrics.FetchAPIDuration.WithLabelValues(product).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusNoContent {
		c.logger.Debug("no data for station", "product", product, "station", stationID)
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s response: %w", product, err)
	}
	return true, nil
}
