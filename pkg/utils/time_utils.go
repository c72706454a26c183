package utils

import "time"

// Unix seconds everywhere in storage; time.Time only at the edges.

func NowUnixSeconds() int64 { return time.Now().Unix() }

// DaysUntil returns the number of whole days between now and t, floored.
// Negative when t is in the past.
func DaysUntil(t time.Time, now time.Time) int {
	diff := t.Sub(now)
	days := int(diff.Hours() / 24)
	if diff < 0 && diff.Hours()/24 != float64(days) {
		days-- // floor toward minus infinity for past dates
	}
	return days
}
