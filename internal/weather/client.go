package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/model"
)

// Fetcher retrieves the current weather for a resolved place key
type Fetcher interface {
	FetchCurrent(ctx context.Context, key string) (*model.WeatherReport, error)
}

// Client calls the remote current-weather endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a weather client from upstream configuration
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL:    cfg.WeatherBaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// payload is the upstream body trimmed to the fields we read
type payload struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// FetchCurrent issues one GET for the given place key in metric units.
// Any failure comes back as an error whose text carries the HTTP status or
// the underlying cause; callers surface it verbatim to the user.
func (c *Client) FetchCurrent(ctx context.Context, key string) (*model.WeatherReport, error) {
	params := url.Values{}
	params.Set("q", key)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	requestURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request returned status %d", resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}

	report := &model.WeatherReport{
		Location:    body.Name,
		TempC:       body.Main.Temp,
		HumidityPct: body.Main.Humidity,
	}
	if len(body.Weather) > 0 {
		report.Description = body.Weather[0].Description
	}
	return report, nil
}
