package check

import (
	"math"
	"time"
)

// criticalWindowDays is the fixed severity boundary: anything expiring in
// fewer than this many days is CRITICAL regardless of the alert threshold.
const criticalWindowDays = 7

// DaysRemaining returns the whole number of days between now and expiresAt,
// rounded toward negative infinity (an expiry one hour in the past is -1
// days, not 0).
//
// Both instants are compared as naive wall-clock readings: the certificate's
// stated (GMT) expiry against the local process clock, with no timezone
// normalization. That skews the day count by the local UTC offset; it is the
// documented behavior of this tool, kept so counts stay stable across
// versions.
func DaysRemaining(now, expiresAt time.Time) int {
	diff := naiveWall(expiresAt).Sub(naiveWall(now))
	return int(math.Floor(diff.Hours() / 24))
}

// ClassifyDays maps a day count to its severity tier.
func ClassifyDays(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days < criticalWindowDays:
		return StatusCritical
	default:
		return StatusOK
	}
}

// naiveWall reinterprets t's wall-clock reading in UTC, discarding the zone.
func naiveWall(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), time.UTC)
}
