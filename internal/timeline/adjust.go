package timeline

import "time"

// timestampLayout is the lexical shape of timestamps in the export feed.
// The trailing Z is a literal here, not an offset directive.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// AdjustTimestamp shifts a UTC instant by a flat offset and renders it in
// the export's timestamp shape. The Z suffix is retained for format
// continuity even though the value now represents local time. The shift is
// plain arithmetic: daylight-saving transitions are deliberately not
// accounted for.
func AdjustTimestamp(t time.Time, offset time.Duration) string {
	return t.UTC().Add(offset).Format(timestampLayout)
}
