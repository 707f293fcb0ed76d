package timeline

import (
	"fmt"
	"time"

	"github.com/christabone/google-timeline-to-city/internal/models"
	"github.com/christabone/google-timeline-to-city/internal/utils"
)

const secondsPerDay = 24 * 60 * 60

// Range is a compiled date-range spec: an inclusive calendar interval, a
// target time of day and a flat local offset for rendering.
type Range struct {
	Start  time.Time     // start date at midnight UTC
	End    time.Time     // end date at midnight UTC
	Target int           // target time of day in seconds since midnight
	Offset time.Duration // local offset applied before measuring distance
}

// ParseRange compiles a configured date-range spec. All field formats were
// checked by config validation, so an error here means the spec bypassed it.
func ParseRange(spec utils.DateRangeSpec) (Range, error) {
	start, err := time.Parse("2006-01-02", spec.Start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid start date %q: %w", spec.Start, err)
	}
	end, err := time.Parse("2006-01-02", spec.End)
	if err != nil {
		return Range{}, fmt.Errorf("invalid end date %q: %w", spec.End, err)
	}
	target, err := time.Parse("15:04:05", spec.ClosestTime)
	if err != nil {
		return Range{}, fmt.Errorf("invalid closest_time %q: %w", spec.ClosestTime, err)
	}
	offset, err := utils.ParseUTCOffset(spec.UTCOffset)
	if err != nil {
		return Range{}, err
	}

	return Range{
		Start:  start,
		End:    end,
		Target: target.Hour()*3600 + target.Minute()*60 + target.Second(),
		Offset: offset,
	}, nil
}

// Contains reports whether the UTC calendar date of t falls inside the
// inclusive [Start, End] interval. The bound is evaluated in UTC regardless
// of the range's own offset.
func (r Range) Contains(t time.Time) bool {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Distance returns the separation in seconds between the record's local time
// of day and the target, taking the smaller of the direct and 24h-wrapped
// difference so that 23:58 is four minutes from a 00:02 target.
func (r Range) Distance(t time.Time) int {
	local := t.UTC().Add(r.Offset)
	sec := local.Hour()*3600 + local.Minute()*60 + local.Second()

	d := sec - r.Target
	if d < 0 {
		d = -d
	}
	if wrapped := secondsPerDay - d; wrapped < d {
		d = wrapped
	}
	return d
}

// SelectClosest returns the in-range record whose local time of day is
// nearest the range's target. Ties resolve to the earliest record in input
// order, so the selection is deterministic for a given record set. The
// boolean is false when no record falls inside the range.
func SelectClosest(records []models.LocationRecord, r Range) (models.LocationRecord, bool) {
	var best models.LocationRecord
	bestDist := -1
	for _, rec := range records {
		if !r.Contains(rec.TimestampUTC) {
			continue
		}
		if d := r.Distance(rec.TimestampUTC); bestDist < 0 || d < bestDist {
			best = rec
			bestDist = d
		}
	}
	return best, bestDist >= 0
}
