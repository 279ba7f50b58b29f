package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "53.727" || q.Get("longitude") != "-7.798" {
			t.Errorf("unexpected coordinates: %s", r.URL.RawQuery)
		}
		if q.Get("current") == "" {
			t.Error("missing current fields in query")
		}
		w.Write([]byte(`{"current":{"temperature_2m":14.5,"wind_speed_10m":22,"weather_code":61}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithCoordinates(53.727, -7.798))
	got := c.Current(context.Background())
	for _, want := range []string{"Погода сьогодні", "Rain", "🌧️", "14.5°C", "22 км/год"} {
		if !strings.Contains(got, want) {
			t.Errorf("Current() missing %q in %q", want, got)
		}
	}
}

func TestForecastUsesTomorrow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("forecast_days") != "2" {
			t.Errorf("expected forecast_days=2, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"daily":{"weather_code":[61,0],"temperature_2m_max":[12,19.5],"wind_speed_10m_max":[30,11]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	got := c.Forecast(context.Background())
	for _, want := range []string{"Прогноз на завтра", "Sunny", "☀️", "19.5°C", "11 км/год"} {
		if !strings.Contains(got, want) {
			t.Errorf("Forecast() missing %q in %q", want, got)
		}
	}
}

func TestForecastMissingTomorrow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"weather_code":[61],"temperature_2m_max":[12],"wind_speed_10m_max":[30]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if got := c.Forecast(context.Background()); !strings.Contains(got, "Не вдалося отримати прогноз") {
		t.Errorf("expected soft failure, got %q", got)
	}
}

func TestCurrentFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	got := c.Current(context.Background())
	if !strings.Contains(got, "Не вдалося отримати погоду") {
		t.Errorf("expected soft failure text, got %q", got)
	}
}

func TestDescribeCode(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		desc  string
		emoji string
	}{
		{"sunny", []int{0}, "Sunny", "☀️"},
		{"cloudy", []int{1, 2, 3}, "Cloudy", "☁️"},
		{"foggy", []int{45, 48}, "Foggy", "🌫️"},
		{"rain", []int{51, 53, 55, 61, 63, 65, 80, 81, 82}, "Rain", "🌧️"},
		{"snow", []int{71, 73, 75, 77, 85, 86}, "Snow", "❄️"},
		{"storm", []int{95, 96, 99}, "Storm", "⛈️"},
		{"unknown", []int{42, -1, 100}, "Normal", "🌡"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, code := range tt.codes {
				desc, emoji := DescribeCode(code)
				if desc != tt.desc || emoji != tt.emoji {
					t.Errorf("DescribeCode(%d) = (%q, %q), want (%q, %q)", code, desc, emoji, tt.desc, tt.emoji)
				}
			}
		})
	}
}
