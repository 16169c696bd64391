package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/roadcast/roadcast/internal/weather"
	"github.com/sony/gobreaker"
)

// dailyFields is the fixed set of daily forecast fields the summary tracks.
var dailyFields = []string{
	"sunrise",
	"sunset",
	"rain_sum",
	"showers_sum",
	"snowfall_sum",
	"temperature_2m_min",
	"temperature_2m_max",
	"visibility_min",
	"visibility_max",
	"wind_speed_10m_max",
	"wind_gusts_10m_max",
}

// OpenMeteoClient fetches the daily forecast payload from Open-Meteo for a
// fixed location.
type OpenMeteoClient struct {
	baseURL string
	lat     float64
	lon     float64
	model   string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoClient(client *http.Client, lat, lon float64, model string) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		lat:     lat,
		lon:     lon,
		model:   model,
		client:  client,
		circuit: newBreaker("openmeteo"),
	}
}

// FetchDaily retrieves the full multi-day forecast payload.
func (c *OpenMeteoClient) FetchDaily(ctx context.Context) (weather.Payload, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", c.lat))
	values.Set("longitude", fmt.Sprintf("%.4f", c.lon))
	values.Set("daily", strings.Join(dailyFields, ","))
	values.Set("timezone", "auto")
	values.Set("models", c.model)

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return weather.Payload{}, err
	}

	resp, err := doRequest(ctx, c.client, c.circuit, req)
	if err != nil {
		return weather.Payload{}, fmt.Errorf("open-meteo fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload weather.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Payload{}, fmt.Errorf("open-meteo decode: %w", err)
	}

	if len(payload.Daily) == 0 {
		return weather.Payload{}, fmt.Errorf("open-meteo response has no daily block")
	}

	return payload, nil
}
