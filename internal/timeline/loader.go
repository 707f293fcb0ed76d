// Package timeline loads Google Timeline location-history exports and
// selects the record closest to a target time of day inside a date range.
package timeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/christabone/google-timeline-to-city/internal/models"
	"github.com/christabone/google-timeline-to-city/pkg/file"
	"github.com/rs/zerolog"
)

// export mirrors the Takeout location-history envelope.
type export struct {
	Locations []exportRecord `json:"locations"`
}

// exportRecord is one raw entry of the export. Coordinates are fixed-point
// degrees scaled by 1e7. Newer exports carry an RFC 3339 timestamp, older
// ones carry epoch milliseconds in timestampMs.
type exportRecord struct {
	Timestamp   string `json:"timestamp"`
	TimestampMs string `json:"timestampMs"`
	LatitudeE7  int64  `json:"latitudeE7"`
	LongitudeE7 int64  `json:"longitudeE7"`
}

// Loader reads location records from an export file into memory.
type Loader struct {
	fileClient file.FileOperations
	logger     zerolog.Logger
}

// NewLoader creates a new Loader instance with the provided file client.
func NewLoader(fileClient file.FileOperations, logger zerolog.Logger) *Loader {
	return &Loader{
		fileClient: fileClient,
		logger:     logger,
	}
}

// Load parses the export at path and returns its records in file order.
// Entries whose timestamp cannot be parsed are skipped with a warning;
// an unreadable or malformed file is an error.
func (l *Loader) Load(path string) ([]models.LocationRecord, error) {
	exists, err := l.fileClient.IsFileExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat location history %s: %w", path, err)
	}
	if !exists {
		return nil, fmt.Errorf("location history %s does not exist", path)
	}

	var data export
	if err := l.fileClient.ReadJsonFile(path, &data); err != nil {
		return nil, fmt.Errorf("failed to read location history %s: %w", path, err)
	}

	records := make([]models.LocationRecord, 0, len(data.Locations))
	skipped := 0
	for _, raw := range data.Locations {
		ts, err := parseTimestamp(raw)
		if err != nil {
			skipped++
			l.logger.Warn().
				Err(err).
				Str("timestamp", raw.Timestamp).
				Msg("Skipping record with unparseable timestamp")
			continue
		}

		records = append(records, models.LocationRecord{
			TimestampUTC: ts,
			Latitude:     float64(raw.LatitudeE7) / 1e7,
			Longitude:    float64(raw.LongitudeE7) / 1e7,
		})
	}

	l.logger.Info().
		Int("records", len(records)).
		Int("skipped", skipped).
		Str("path", path).
		Msg("Loaded location history")
	return records, nil
}

// parseTimestamp extracts the UTC instant of a raw record, preferring the
// RFC 3339 timestamp and falling back to epoch milliseconds.
func parseTimestamp(raw exportRecord) (time.Time, error) {
	if raw.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, raw.Timestamp)
		if err != nil {
			return time.Time{}, err
		}
		return ts.UTC(), nil
	}

	if raw.TimestampMs != "" {
		ms, err := strconv.ParseInt(raw.TimestampMs, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestampMs %q: %w", raw.TimestampMs, err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("record has no timestamp")
}
