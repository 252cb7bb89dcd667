package parse

import (
	"fmt"
	"regexp"
	"strconv"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Clock parses a schedule time string in zero-padded 24-hour "HH:MM" form.
// Anything else ("8:00", "24:00", "08:00:00") is rejected; schedule rows are
// validated with this at creation so downstream consumers can assume a
// well-formed value.
func Clock(s string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM in 24-hour format", s)
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// Weekdays validates a schedule's day-of-week set. Days use the same
// numbering as time.Weekday: 0=Sunday .. 6=Saturday. An empty set is legal
// (the schedule never fires); out-of-range or duplicate values are not.
func Weekdays(days []int) error {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid weekday %d: must be 0 (Sunday) through 6 (Saturday)", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate weekday %d", d)
		}
		seen[d] = true
	}
	return nil
}
