// Package weather fetches current conditions from the OpenWeatherMap API to
// prefill environmental report fields.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fieldscope/api/internal/config"
)

// Provider exposes the subset of the weather API the handlers need.
type Provider interface {
	CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error)
}

// Client implements Provider against the OpenWeatherMap current weather
// endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client from configuration. An empty API key is
// allowed at construction time; requests will fail upstream until one is set.
func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CurrentTemperature returns the current temperature in degrees Celsius at
// the given coordinates.
func (c *Client) CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"units": {"metric"},
		"appid": {c.apiKey},
	}
	fullURL := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var wr response
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	return wr.Main.Temp, nil
}

// OpenWeatherMap API response types.

type response struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}
