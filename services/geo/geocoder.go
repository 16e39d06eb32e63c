package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fixify/models"
)

// Sentinel geocoding failures. Callers of a Geocoder may distinguish them with
// errors.Is; the Resolver absorbs all of them equally.
var (
	ErrRateLimited = errors.New("geocoder: rate limited")
	ErrZeroResults = errors.New("geocoder: no results for address")
)

// Geocoder turns a postal address into coordinates. Implementations wrap an
// external mapping provider.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinates, error)
}

// GeocoderFunc adapts a plain function to the Geocoder interface.
type GeocoderFunc func(ctx context.Context, address string) (models.Coordinates, error)

func (f GeocoderFunc) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	return f(ctx, address)
}

// HTTPGeocoder queries a geocoding endpoint expected to answer
// GET {base}?q=<address> with a JSON body carrying latitude and longitude.
type HTTPGeocoder struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPGeocoder builds a geocoder against the given endpoint with a request
// timeout.
func NewHTTPGeocoder(baseURL string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Found     bool    `json:"found"`
}

// Geocode looks the address up, mapping provider responses onto the sentinel
// failures above.
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	endpoint := fmt.Sprintf("%s?q=%s", g.BaseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return models.Coordinates{}, ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return models.Coordinates{}, ErrZeroResults
	case resp.StatusCode != http.StatusOK:
		return models.Coordinates{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if !body.Found && body.Latitude == 0 && body.Longitude == 0 {
		return models.Coordinates{}, ErrZeroResults
	}
	return models.Coordinates{Latitude: body.Latitude, Longitude: body.Longitude}, nil
}
