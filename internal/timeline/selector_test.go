package timeline_test

import (
	"testing"
	"time"

	"github.com/christabone/google-timeline-to-city/internal/models"
	"github.com/christabone/google-timeline-to-city/internal/timeline"
	"github.com/christabone/google-timeline-to-city/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record builds a LocationRecord at the given RFC 3339 timestamp.
func record(t *testing.T, ts string, lat, lon float64) models.LocationRecord {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	return models.LocationRecord{TimestampUTC: parsed.UTC(), Latitude: lat, Longitude: lon}
}

// mustRange compiles a spec that is expected to be valid.
func mustRange(t *testing.T, start, end, closest, offset string) timeline.Range {
	t.Helper()
	r, err := timeline.ParseRange(utils.DateRangeSpec{
		Start:       start,
		End:         end,
		ClosestTime: closest,
		UTCOffset:   offset,
	})
	require.NoError(t, err)
	return r
}

// TestSelectClosest_SingleRecordScenario covers the single-record case: a
// record at 14:03:10 against a 14:00:00 target on the same day is selected.
func TestSelectClosest_SingleRecordScenario(t *testing.T) {
	records := []models.LocationRecord{
		record(t, "2023-06-01T14:03:10.000Z", 52.52, 13.405),
	}
	r := mustRange(t, "2023-06-01", "2023-06-01", "14:00:00", "+00:00")

	selected, ok := timeline.SelectClosest(records, r)

	assert.True(t, ok)
	assert.Equal(t, records[0], selected)
}

// TestSelectClosest_DateBounds checks the inclusive [start 00:00:00,
// end 23:59:59] window evaluated in UTC.
func TestSelectClosest_DateBounds(t *testing.T) {
	records := []models.LocationRecord{
		record(t, "2023-05-31T23:59:59Z", 1, 1), // day before start
		record(t, "2023-06-01T00:00:00Z", 2, 2), // first instant in range
		record(t, "2023-06-02T23:59:59Z", 3, 3), // last instant in range
		record(t, "2023-06-03T00:00:00Z", 4, 4), // day after end
	}
	r := mustRange(t, "2023-06-01", "2023-06-02", "23:59:59", "+00:00")

	selected, ok := timeline.SelectClosest(records, r)

	assert.True(t, ok)
	assert.Equal(t, 3.0, selected.Latitude)

	// The in-range records are exactly the middle two: with a midnight
	// target the first of them wins instead.
	r = mustRange(t, "2023-06-01", "2023-06-02", "00:00:00", "+00:00")
	selected, ok = timeline.SelectClosest(records, r)
	assert.True(t, ok)
	assert.Equal(t, 2.0, selected.Latitude)
}

// TestSelectClosest_Wraparound verifies that 23:58 is four minutes from a
// 00:02 target rather than nearly a day away.
func TestSelectClosest_Wraparound(t *testing.T) {
	records := []models.LocationRecord{
		record(t, "2023-06-01T01:00:00Z", 1, 1), // 58 minutes from target
		record(t, "2023-06-01T23:58:00Z", 2, 2), // 4 minutes from target, wrapped
	}
	r := mustRange(t, "2023-06-01", "2023-06-01", "00:02:00", "+00:00")

	selected, ok := timeline.SelectClosest(records, r)

	assert.True(t, ok)
	assert.Equal(t, 2.0, selected.Latitude)
}

// TestSelectClosest_TieBreak verifies that equidistant records resolve to
// the earliest one in input order.
func TestSelectClosest_TieBreak(t *testing.T) {
	records := []models.LocationRecord{
		record(t, "2023-06-01T14:10:00Z", 1, 1),
		record(t, "2023-06-01T13:50:00Z", 2, 2),
	}
	r := mustRange(t, "2023-06-01", "2023-06-01", "14:00:00", "+00:00")

	selected, ok := timeline.SelectClosest(records, r)

	assert.True(t, ok)
	assert.Equal(t, 1.0, selected.Latitude)
}

// TestSelectClosest_OffsetShiftsLocalTime verifies the distance is measured
// against the local time of day produced by the spec's offset.
func TestSelectClosest_OffsetShiftsLocalTime(t *testing.T) {
	// 21:00 UTC is 23:00 local at +02:00; 11:00 UTC is 13:00 local.
	records := []models.LocationRecord{
		record(t, "2023-06-01T11:00:00Z", 1, 1),
		record(t, "2023-06-01T21:00:00Z", 2, 2),
	}
	r := mustRange(t, "2023-06-01", "2023-06-01", "23:30:00", "+02:00")

	selected, ok := timeline.SelectClosest(records, r)

	assert.True(t, ok)
	assert.Equal(t, 2.0, selected.Latitude)
}

// TestSelectClosest_NoMatch verifies an empty selection is reported, not an
// error.
func TestSelectClosest_NoMatch(t *testing.T) {
	records := []models.LocationRecord{
		record(t, "2023-06-01T14:03:10Z", 1, 1),
	}
	r := mustRange(t, "2024-01-01", "2024-01-31", "14:00:00", "+00:00")

	_, ok := timeline.SelectClosest(records, r)

	assert.False(t, ok)
}

// TestParseRange_InvalidOffset verifies a malformed offset is rejected.
func TestParseRange_InvalidOffset(t *testing.T) {
	_, err := timeline.ParseRange(utils.DateRangeSpec{
		Start:       "2023-06-01",
		End:         "2023-06-01",
		ClosestTime: "14:00:00",
		UTCOffset:   "05:30",
	})

	assert.Error(t, err)
}
