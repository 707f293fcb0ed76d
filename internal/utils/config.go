package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/christabone/google-timeline-to-city/pkg/file"
)

// Geocoding provider names accepted in the configuration.
const (
	ProviderNominatim = "nominatim"
	ProviderGoogle    = "google"
)

// Defaults applied when the geocoder section leaves fields unset.
const (
	DefaultTimeoutSeconds  = 15
	DefaultMaxAttempts     = 3
	DefaultIntervalSeconds = 3
)

// DateRangeSpec selects at most one record: the one inside [Start, End]
// whose local time of day is closest to ClosestTime.
type DateRangeSpec struct {
	Start       string `yaml:"start"`        // Inclusive start date (YYYY-MM-DD)
	End         string `yaml:"end"`          // Inclusive end date (YYYY-MM-DD)
	ClosestTime string `yaml:"closest_time"` // Target time of day (HH:MM:SS)
	UTCOffset   string `yaml:"utc_offset"`   // Signed local offset (+hh:mm), defaults to +00:00
}

// Config represents the structure of the configuration file.
type Config struct {
	DateRanges []DateRangeSpec `yaml:"date_ranges"` // Date ranges to extract, in output order

	Geocoder struct {
		Provider        string `yaml:"provider"`                 // Reverse-geocoding provider: nominatim or google
		MapsAPIKey      string `yaml:"maps_api_key"`             // Google Maps API key (google provider only)
		TimeoutSeconds  int    `yaml:"timeout_seconds"`          // Per-request timeout (in seconds)
		MaxAttempts     int    `yaml:"max_attempts"`             // Attempts per coordinate before giving up
		IntervalSeconds int    `yaml:"request_interval_seconds"` // Minimum spacing between requests (in seconds)
	} `yaml:"geocoder"`
}

// LoadConfig loads the YAML configuration from the specified file, applies
// defaults and validates it. It returns a pointer to the Config struct and an
// error if loading or validation fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyDefaults fills unset geocoder fields with their defaults.
func (c *Config) applyDefaults() {
	if c.Geocoder.Provider == "" {
		c.Geocoder.Provider = ProviderNominatim
	}
	if c.Geocoder.TimeoutSeconds <= 0 {
		c.Geocoder.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Geocoder.MaxAttempts <= 0 {
		c.Geocoder.MaxAttempts = DefaultMaxAttempts
	}
	if c.Geocoder.IntervalSeconds <= 0 {
		c.Geocoder.IntervalSeconds = DefaultIntervalSeconds
	}
	for i := range c.DateRanges {
		if c.DateRanges[i].UTCOffset == "" {
			c.DateRanges[i].UTCOffset = "+00:00"
		}
	}
}

// Validate checks the configuration for malformed or missing fields. Any
// violation aborts the run before processing begins.
func (c *Config) Validate() error {
	if len(c.DateRanges) == 0 {
		return fmt.Errorf("config must include date_ranges")
	}

	for i, r := range c.DateRanges {
		if r.Start == "" || r.End == "" || r.ClosestTime == "" {
			return fmt.Errorf("date range %d: start, end and closest_time are required", i+1)
		}
		start, err := time.Parse("2006-01-02", r.Start)
		if err != nil {
			return fmt.Errorf("date range %d: invalid start date %q: %w", i+1, r.Start, err)
		}
		end, err := time.Parse("2006-01-02", r.End)
		if err != nil {
			return fmt.Errorf("date range %d: invalid end date %q: %w", i+1, r.End, err)
		}
		if end.Before(start) {
			return fmt.Errorf("date range %d: end date %s precedes start date %s", i+1, r.End, r.Start)
		}
		if _, err := time.Parse("15:04:05", r.ClosestTime); err != nil {
			return fmt.Errorf("date range %d: invalid closest_time %q: %w", i+1, r.ClosestTime, err)
		}
		if _, err := ParseUTCOffset(r.UTCOffset); err != nil {
			return fmt.Errorf("date range %d: %w", i+1, err)
		}
	}

	switch c.Geocoder.Provider {
	case ProviderNominatim:
	case ProviderGoogle:
		if c.Geocoder.MapsAPIKey == "" {
			return fmt.Errorf("geocoder provider %q requires maps_api_key", ProviderGoogle)
		}
	default:
		return fmt.Errorf("unknown geocoder provider %q", c.Geocoder.Provider)
	}

	return nil
}

// ParseUTCOffset parses a signed hours:minutes offset such as "+05:30" or
// "-08:00" into a duration. The offset is a flat shift with no timezone
// database behind it.
func ParseUTCOffset(s string) (time.Duration, error) {
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return 0, fmt.Errorf("invalid utc_offset %q: expected format +hh:mm", s)
	}
	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, fmt.Errorf("invalid utc_offset %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return 0, fmt.Errorf("invalid utc_offset %q: %w", s, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid utc_offset %q: out of range", s)
	}

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if s[0] == '-' {
		d = -d
	}
	return d, nil
}
