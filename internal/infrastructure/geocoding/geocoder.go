package geocoding

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrNoResults is returned when an address resolves to nothing
var ErrNoResults = errors.New("could not find location for the specified address")

// GoogleGeocoder resolves addresses with the Google Maps Geocoding API
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a geocoder. baseURL overrides the Maps endpoint and is empty in production.
func NewGoogleGeocoder(apiKey, baseURL string) (*GoogleGeocoder, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleGeocoder{client: c}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// StaticGeocoder returns one fixed point for every address. It stands in
// when no Maps key is configured.
type StaticGeocoder struct {
	Lat float64
	Lng float64
}

func (s StaticGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if address == "" {
		return 0, 0, ErrNoResults
	}
	return s.Lat, s.Lng, nil
}
