package scheduling

import (
	"fmt"
	"time"

	"agenda/pkg/model"
)

// DateRange is an inclusive span of calendar dates in YYYY-MM-DD form.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) bounds() (time.Time, time.Time, error) {
	start, err := ParseDate(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, r.Start, r.End)
	}
	return start, end, nil
}

// Days returns the number of calendar days the range covers.
func (r DateRange) Days() (int, error) {
	start, end, err := r.bounds()
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Dates lists every date in the range, ascending.
func (r DateRange) Dates() ([]string, error) {
	start, end, err := r.bounds()
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// Expand materializes a weekly pattern over a date range: one entry per
// calendar day, ascending, covering closed weekdays as Closed entries. All
// produced entries are non-customized. Expansion is deterministic, the same
// inputs always yield the same set.
func Expand(resourceID string, pattern WeeklyPattern, r DateRange) ([]model.ScheduleEntry, error) {
	start, end, err := r.bounds()
	if err != nil {
		return nil, err
	}

	var entries []model.ScheduleEntry
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dow := int(d.Weekday())
		rule := pattern[dow]

		entry := model.ScheduleEntry{
			ResourceID: resourceID,
			Date:       d.Format(DateLayout),
			DayOfWeek:  dow,
			Closed:     !rule.Open,
			Customized: false,
		}
		if rule.Open {
			entry.OpenTime = rule.OpenTime
			entry.CloseTime = rule.CloseTime
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
