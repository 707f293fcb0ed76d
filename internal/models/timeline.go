package models

import (
	"time"
)

// LocationRecord is a single point from a location-history export.
// Records are created once during load and read-only afterwards.
type LocationRecord struct {
	TimestampUTC time.Time
	Latitude     float64
	Longitude    float64
}
