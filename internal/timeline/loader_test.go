package timeline_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/christabone/google-timeline-to-city/internal/timeline"
	"github.com/christabone/google-timeline-to-city/pkg/file"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeHistory writes a location-history JSON document to a temp file.
func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestLoader_Load_Success verifies records with fractional, whole-second and
// epoch-millisecond timestamps all load, and E7 coordinates are scaled.
func TestLoader_Load_Success(t *testing.T) {
	path := writeHistory(t, `{
		"locations": [
			{"timestamp": "2023-06-01T14:03:10.000Z", "latitudeE7": 525200066, "longitudeE7": 133049926},
			{"timestamp": "2023-06-01T15:00:00Z", "latitudeE7": 487000000, "longitudeE7": 24000000},
			{"timestampMs": "1685628190000", "latitudeE7": 377490000, "longitudeE7": -1224194000}
		]
	}`)
	loader := timeline.NewLoader(file.NewFileService(), zerolog.Nop())

	records, err := loader.Load(path)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 52.5200066, records[0].Latitude)
	assert.Equal(t, 13.3049926, records[0].Longitude)
	assert.Equal(t, time.Date(2023, 6, 1, 14, 3, 10, 0, time.UTC), records[0].TimestampUTC)
	assert.Equal(t, time.Date(2023, 6, 1, 15, 0, 0, 0, time.UTC), records[1].TimestampUTC)
	// 1685628190000 ms is the same instant as the first record
	assert.Equal(t, time.Date(2023, 6, 1, 14, 3, 10, 0, time.UTC), records[2].TimestampUTC)
	assert.Equal(t, -122.4194, records[2].Longitude)
}

// TestLoader_Load_SkipsUnparseableTimestamps verifies malformed entries are
// dropped without failing the load.
func TestLoader_Load_SkipsUnparseableTimestamps(t *testing.T) {
	path := writeHistory(t, `{
		"locations": [
			{"timestamp": "not-a-timestamp", "latitudeE7": 1, "longitudeE7": 1},
			{"latitudeE7": 2, "longitudeE7": 2},
			{"timestamp": "2023-06-01T14:03:10Z", "latitudeE7": 3, "longitudeE7": 3}
		]
	}`)
	loader := timeline.NewLoader(file.NewFileService(), zerolog.Nop())

	records, err := loader.Load(path)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3e-7, records[0].Latitude)
}

// TestLoader_Load_MissingFile verifies an absent source is reported as such
// rather than as a decode failure.
func TestLoader_Load_MissingFile(t *testing.T) {
	loader := timeline.NewLoader(file.NewFileService(), zerolog.Nop())

	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

// TestLoader_Load_MalformedJSON verifies a corrupt document is an error.
func TestLoader_Load_MalformedJSON(t *testing.T) {
	path := writeHistory(t, `{"locations": [`)
	loader := timeline.NewLoader(file.NewFileService(), zerolog.Nop())

	_, err := loader.Load(path)

	assert.Error(t, err)
}
