package model

// DayScheduleConfig describes one weekday inside a recurring week pattern.
// Open=false means the resource does not operate on that weekday; the times
// are ignored in that case.
type DayScheduleConfig struct {
	Open      bool   `json:"open"`
	OpenTime  string `json:"open_time,omitempty" validate:"omitempty,valid_clock"`
	CloseTime string `json:"close_time,omitempty" validate:"omitempty,valid_clock"`
}

// RecurringScheduleRequest applies a weekly pattern over a date range.
// WeekSchedule is keyed by weekday number as a string, "0" (Sunday) through
// "6" (Saturday); all seven keys must be present, with closed days declared
// via open=false.
type RecurringScheduleRequest struct {
	ResourceID      string                       `json:"resource_id" validate:"required,mongodb"`
	WeekSchedule    map[string]DayScheduleConfig `json:"week_schedule" validate:"required,min=1"`
	StartDate       string                       `json:"start_date" validate:"required,valid_date"`
	EndDate         string                       `json:"end_date" validate:"required,valid_date"`
	ReplaceExisting bool                         `json:"replace_existing"`
}

// ExceptionScheduleRequest sets a one-off override for a single date.
type ExceptionScheduleRequest struct {
	ResourceID      string `json:"resource_id" validate:"required,mongodb"`
	Date            string `json:"date" validate:"required,valid_date"`
	OpenTime        string `json:"open_time,omitempty" validate:"omitempty,valid_clock"`
	CloseTime       string `json:"close_time,omitempty" validate:"omitempty,valid_clock"`
	Closed          bool   `json:"closed"`
	ReplaceExisting bool   `json:"replace_existing"`
}

// ConflictCheckRequest asks which proposed dates would collide with existing
// entries. Candidates come from the start_date/end_date range (optionally
// narrowed by days_of_week), from the explicit dates list, or from the union
// of both; at least one of the two sources is required. IncludeCustomized
// defaults to true when omitted: only customized entries count as conflicts.
// When false, any existing entry on a proposed date counts.
type ConflictCheckRequest struct {
	ResourceID        string   `json:"resource_id" validate:"required,mongodb"`
	StartDate         string   `json:"start_date,omitempty" validate:"omitempty,valid_date"`
	EndDate           string   `json:"end_date,omitempty" validate:"omitempty,valid_date"`
	Dates             []string `json:"dates,omitempty" validate:"omitempty,dive,valid_date"`
	DaysOfWeek        []int    `json:"days_of_week,omitempty" validate:"omitempty,dive,min=0,max=6"`
	IncludeCustomized *bool    `json:"include_customized,omitempty"`
}

// RecurringScheduleResult summarizes what an apply operation did.
type RecurringScheduleResult struct {
	ResourceID     string   `json:"resource_id"`
	EntriesWritten int      `json:"entries_written"`
	DatesPreserved []string `json:"dates_preserved,omitempty"`
}
