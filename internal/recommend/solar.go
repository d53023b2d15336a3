package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	openMeteoURL = "https://api.open-meteo.com/v1/forecast"

	// maxResponseSize bounds upstream response bodies.
	maxResponseSize = 1 << 20
)

var (
	ErrLocationNotFound = errors.New("location lookup failed")
	ErrSolarUnavailable = errors.New("solar data unavailable")
)

// SolarClient resolves a location name to coordinates and fetches its
// average daily solar irradiance.
type SolarClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewSolarClient(timeout time.Duration) *SolarClient {
	return &SolarClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "solarmarket/1.0",
	}
}

// Geocode resolves a free-text location via Nominatim.
func (c *SolarClient) Geocode(ctx context.Context, location string) (lat, lon float64, err error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := c.getJSON(ctx, nominatimURL+"?"+params.Encode(), &results); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrLocationNotFound, err)
	}
	if len(results) == 0 {
		return 0, 0, ErrLocationNotFound
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, ErrLocationNotFound
	}
	return lat, lon, nil
}

// AverageDailySunHours fetches the Open-Meteo daily shortwave radiation
// forecast for the coordinates and converts the mean from MJ/m2/day to
// kWh/m2/day, which doubles as peak sun hours.
func (c *SolarClient) AverageDailySunHours(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "shortwave_radiation_sum")
	params.Set("timezone", "auto")

	var payload struct {
		Daily struct {
			ShortwaveRadiationSum []float64 `json:"shortwave_radiation_sum"`
		} `json:"daily"`
	}
	if err := c.getJSON(ctx, openMeteoURL+"?"+params.Encode(), &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSolarUnavailable, err)
	}

	values := payload.Daily.ShortwaveRadiationSum
	if len(values) == 0 {
		return 0, ErrSolarUnavailable
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avgMJ := sum / float64(len(values))
	return round2(avgMJ / 3.6), nil
}

func (c *SolarClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
