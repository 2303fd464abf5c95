package scheduling

import (
	"fmt"

	"agenda/pkg/model"
)

// BuildException constructs a customized single-date override. Closed
// exceptions carry no window; open exceptions must carry a valid same-day
// window.
func BuildException(resourceID, date, openTime, closeTime string, closed bool) (model.ScheduleEntry, error) {
	day, err := ParseDate(date)
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	entry := model.ScheduleEntry{
		ResourceID: resourceID,
		Date:       date,
		DayOfWeek:  int(day.Weekday()),
		Closed:     closed,
		Customized: true,
	}

	if closed {
		return entry, nil
	}

	if !ValidClock(openTime) {
		return model.ScheduleEntry{}, fmt.Errorf("%w: open_time %q is not HH:MM", ErrInvalidPattern, openTime)
	}
	if !ValidClock(closeTime) {
		return model.ScheduleEntry{}, fmt.Errorf("%w: close_time %q is not HH:MM", ErrInvalidPattern, closeTime)
	}
	if openTime >= closeTime {
		return model.ScheduleEntry{}, fmt.Errorf("%w: open_time %s must be before close_time %s", ErrInvalidPattern, openTime, closeTime)
	}

	entry.OpenTime = openTime
	entry.CloseTime = closeTime
	return entry, nil
}

// IsBookableAt reports whether the entry's resource can be booked at the
// given HH:MM clock time. The window is half-open: the close time itself is
// not bookable.
func IsBookableAt(entry model.ScheduleEntry, clock string) bool {
	if entry.Closed {
		return false
	}
	return entry.OpenTime <= clock && clock < entry.CloseTime
}
