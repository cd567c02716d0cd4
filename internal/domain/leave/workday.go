package leave

import "time"

// CountWorkingDays counts the days of the closed range [start, end]. Saturdays
// and Sundays are skipped when excludeWeekends is set.
func CountWorkingDays(start, end Date, excludeWeekends bool) (int, error) {
	if end.Before(start) {
		return 0, &InvalidRangeError{Start: start, End: end}
	}

	count := 0
	for current := start; !current.After(end); current = current.AddDays(1) {
		if excludeWeekends && IsWeekend(current) {
			continue
		}
		count++
	}

	return count, nil
}

func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
