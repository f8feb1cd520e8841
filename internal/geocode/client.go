package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/model"
)

// Suggester fetches place suggestions for a partial query
type Suggester interface {
	FetchSuggestions(ctx context.Context, query string) ([]model.PlaceRecord, error)
}

// Client calls the remote geocoding endpoint
type Client struct {
	baseURL    string
	apiKey     string
	limit      int
	httpClient *http.Client
}

// NewClient creates a geocoding client from upstream configuration
func NewClient(cfg config.UpstreamConfig, limit int) *Client {
	return &Client{
		baseURL:    cfg.GeocodingBaseURL,
		apiKey:     cfg.APIKey,
		limit:      limit,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchSuggestions issues one GET to the geocoding endpoint and returns the
// parsed records in response order. Callers must not pass a query that is
// empty after trimming. Transport, status, and decode failures are returned
// as errors; deciding whether they are fatal is the caller's concern.
func (c *Client) FetchSuggestions(ctx context.Context, query string) ([]model.PlaceRecord, error) {
	query = strings.TrimSpace(query)

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("appid", c.apiKey)
	requestURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocoding response: %w", err)
	}

	return model.ParsePlaceRecords(body)
}
