package utils

import "time"

// CurrentSeason maps a point in time onto the Indian season buckets the
// seed datasets use: summer (Mar–Jun), monsoon (Jul–Sep), winter (Oct–Feb).
func CurrentSeason(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May, time.June:
		return "summer"
	case time.July, time.August, time.September:
		return "monsoon"
	default:
		return "winter"
	}
}
