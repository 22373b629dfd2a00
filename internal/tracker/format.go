package tracker

import (
	"fmt"
	"time"
)

const (
	secondsPerDay    = 24 * 60 * 60
	secondsPerHour   = 60 * 60
	secondsPerMinute = 60
)

// FormatSpend renders a duration in seconds as whole days, hours, minutes
// and seconds. Each unit is the floor remainder left by the larger ones.
func FormatSpend(total int64) string {
	if total < 0 {
		total = 0
	}
	days := total / secondsPerDay
	total %= secondsPerDay
	hours := total / secondsPerHour
	total %= secondsPerHour
	minutes := total / secondsPerMinute
	seconds := total % secondsPerMinute
	return fmt.Sprintf("Spend %d days, %d hours %d minutes %d sec", days, hours, minutes, seconds)
}

// FormatStamp renders a Unix timestamp in the fixed ctime layout.
func FormatStamp(unix int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(unix, 0).In(loc).Format(time.ANSIC)
}
