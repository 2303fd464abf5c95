package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"agenda/pkg/model"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a wall clock time in HH:MM form.
// Lexicographic comparison of two valid clocks orders them chronologically,
// which the rest of the package relies on.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidRange, s)
	}
	return d, nil
}

// WeekdayRule is the operating window for one weekday. Closed weekdays have
// Open=false and empty times.
type WeekdayRule struct {
	Open      bool
	OpenTime  string
	CloseTime string
}

// WeeklyPattern holds one rule per weekday, indexed 0 (Sunday) through
// 6 (Saturday).
type WeeklyPattern [7]WeekdayRule

// NewWeeklyPattern builds a pattern from the wire map keyed "0".."6".
// All seven weekday keys must be present; closed weekdays are declared with
// open=false, not omitted. Open weekdays must carry a valid same-day window,
// open before close.
func NewWeeklyPattern(week map[string]model.DayScheduleConfig) (WeeklyPattern, error) {
	var p WeeklyPattern

	if len(week) == 0 {
		return p, fmt.Errorf("%w: empty week schedule", ErrInvalidPattern)
	}

	for idx := 0; idx < 7; idx++ {
		if _, ok := week[strconv.Itoa(idx)]; !ok {
			return p, fmt.Errorf("%w: missing weekday key %q", ErrInvalidPattern, strconv.Itoa(idx))
		}
	}

	for key, day := range week {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx > 6 {
			return p, fmt.Errorf("%w: weekday key %q must be \"0\" through \"6\"", ErrInvalidPattern, key)
		}

		if !day.Open {
			continue
		}

		if !ValidClock(day.OpenTime) {
			return p, fmt.Errorf("%w: weekday %d open_time %q is not HH:MM", ErrInvalidPattern, idx, day.OpenTime)
		}
		if !ValidClock(day.CloseTime) {
			return p, fmt.Errorf("%w: weekday %d close_time %q is not HH:MM", ErrInvalidPattern, idx, day.CloseTime)
		}
		if day.OpenTime >= day.CloseTime {
			return p, fmt.Errorf("%w: weekday %d open_time %s must be before close_time %s", ErrInvalidPattern, idx, day.OpenTime, day.CloseTime)
		}

		p[idx] = WeekdayRule{
			Open:      true,
			OpenTime:  day.OpenTime,
			CloseTime: day.CloseTime,
		}
	}

	return p, nil
}
