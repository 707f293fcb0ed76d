package geocoder

import (
	"context"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"
)

// GoogleResolver resolves coordinates through the Google Maps Geocoding API.
type GoogleResolver struct {
	client *maps.Client // Maps API client for making reverse-geocoding requests
	logger zerolog.Logger
}

// NewGoogleResolver creates a new GoogleResolver instance.
func NewGoogleResolver(apiKey string, logger zerolog.Logger) (*GoogleResolver, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleResolver{
		client: c,
		logger: logger,
	}, nil
}

// Reverse resolves a coordinate pair using the Maps Geocoding API and maps
// Google's address component types onto the shared Address structure.
func (g *GoogleResolver) Reverse(ctx context.Context, latitude, longitude float64) (Address, error) {
	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: latitude, Lng: longitude},
	}

	results, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return Address{}, err
	}
	if len(results) == 0 {
		return Address{}, ErrNoResult
	}

	var addr Address
	for _, component := range results[0].AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "locality":
				addr.City = component.LongName
			case "postal_town":
				addr.Town = component.LongName
			case "sublocality", "sublocality_level_1":
				addr.Suburb = component.LongName
			case "administrative_area_level_1":
				addr.State = component.LongName
			case "country":
				addr.Country = component.LongName
			}
		}
	}
	if addr == (Address{}) {
		return Address{}, ErrNoResult
	}

	return addr, nil
}
