// Package geocoder resolves coordinate pairs into human-readable place
// names through external reverse-geocoding services.
package geocoder

import (
	"context"
	"errors"
)

// ErrNoResult indicates the service answered but returned no usable address.
var ErrNoResult = errors.New("no address found for coordinates")

// Resolver interface defines the methods for reverse-geocoding providers.
type Resolver interface {
	Reverse(ctx context.Context, latitude, longitude float64) (Address, error)
}
