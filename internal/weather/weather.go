// Package weather provides the open-meteo client for PobutBot.
//
// It renders current-weather and tomorrow-forecast texts for the scheduled
// broadcasts. Calls fail soft: any transport or decode error produces a
// human-readable error string instead of propagating.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Default client configuration.
const (
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout = 10 * time.Second
)

// Opts holds weather client configuration options.
type Opts struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Timeout   time.Duration
}

// Option configures weather client creation.
type Option func(*Opts)

// WithBaseURL overrides the API base URL (tests).
func WithBaseURL(baseURL string) Option {
	return func(o *Opts) { o.BaseURL = baseURL }
}

// WithCoordinates sets the deployment location.
func WithCoordinates(lat, lon float64) Option {
	return func(o *Opts) { o.Latitude = lat; o.Longitude = lon }
}

// WithTimeout bounds each API call.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// Client fetches weather data from the open-meteo API.
type Client struct {
	http    *http.Client
	baseURL string
	lat     float64
	lon     float64
}

// NewClient creates a weather client.
func NewClient(opts ...Option) *Client {
	cfg := Opts{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		lat:     cfg.Latitude,
		lon:     cfg.Longitude,
	}
}

type currentResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

type forecastResponse struct {
	Daily struct {
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		WindSpeedMax   []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// Current returns the current-weather broadcast text.
func (c *Client) Current(ctx context.Context) string {
	query := url.Values{
		"latitude":  {formatCoord(c.lat)},
		"longitude": {formatCoord(c.lon)},
		"current":   {"temperature_2m,weather_code,wind_speed_10m"},
		"timezone":  {"auto"},
	}
	var data currentResponse
	if err := c.get(ctx, query, &data); err != nil {
		slog.Error("Weather current fetch failed", "error", err)
		return fmt.Sprintf("Не вдалося отримати погоду: %v", err)
	}

	desc, emoji := DescribeCode(data.Current.WeatherCode)
	return fmt.Sprintf("Погода сьогодні: %s %s, 🌡 %s°C, 💨 %s км/год",
		desc, emoji, formatNumber(data.Current.Temperature), formatNumber(data.Current.WindSpeed))
}

// Forecast returns the tomorrow-forecast broadcast text (daily index 1).
func (c *Client) Forecast(ctx context.Context) string {
	query := url.Values{
		"latitude":      {formatCoord(c.lat)},
		"longitude":     {formatCoord(c.lon)},
		"daily":         {"weather_code,temperature_2m_max,wind_speed_10m_max"},
		"forecast_days": {"2"},
		"timezone":      {"auto"},
	}
	var data forecastResponse
	if err := c.get(ctx, query, &data); err != nil {
		slog.Error("Weather forecast fetch failed", "error", err)
		return fmt.Sprintf("Не вдалося отримати прогноз: %v", err)
	}
	if len(data.Daily.WeatherCode) < 2 || len(data.Daily.TemperatureMax) < 2 || len(data.Daily.WindSpeedMax) < 2 {
		slog.Error("Weather forecast response missing tomorrow", "days", len(data.Daily.WeatherCode))
		return "Не вдалося отримати прогноз: неповні дані"
	}

	desc, emoji := DescribeCode(data.Daily.WeatherCode[1])
	return fmt.Sprintf("Прогноз на завтра: %s %s, 🌡 до %s°C, 💨 до %s км/год",
		desc, emoji, formatNumber(data.Daily.TemperatureMax[1]), formatNumber(data.Daily.WindSpeedMax[1]))
}

func (c *Client) get(ctx context.Context, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// DescribeCode maps a WMO weather interpretation code to its description and
// emoji. The code sets follow the open-meteo documentation.
func DescribeCode(code int) (string, string) {
	switch {
	case code == 0:
		return "Sunny", "☀️"
	case code == 1 || code == 2 || code == 3:
		return "Cloudy", "☁️"
	case code == 45 || code == 48:
		return "Foggy", "🌫️"
	case code == 51 || code == 53 || code == 55 || code == 61 || code == 63 || code == 65 ||
		code == 80 || code == 81 || code == 82:
		return "Rain", "🌧️"
	case code == 71 || code == 73 || code == 75 || code == 77 || code == 85 || code == 86:
		return "Snow", "❄️"
	case code == 95 || code == 96 || code == 99:
		return "Storm", "⛈️"
	default:
		return "Normal", "🌡"
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
