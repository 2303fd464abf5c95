package model

import "time"

// ScheduleEntry is the resolved open/closed state of a bookable resource for
// one calendar date. Entries produced by expanding a recurring pattern carry
// Customized=false; manual per-date overrides carry Customized=true and take
// precedence for the same (resource, date).
type ScheduleEntry struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID string    `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	Date       string    `json:"date" bson:"date" validate:"required,valid_date"`
	DayOfWeek  int       `json:"day_of_week" bson:"day_of_week" validate:"min=0,max=6"`
	OpenTime   string    `json:"open_time,omitempty" bson:"open_time" validate:"omitempty,valid_clock"`
	CloseTime  string    `json:"close_time,omitempty" bson:"close_time" validate:"omitempty,valid_clock"`
	Closed     bool      `json:"closed" bson:"closed"`
	Customized bool      `json:"customized" bson:"customized"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ConflictReport lists the dates on which a proposed schedule write would
// collide with existing customized entries. It is computed read-only and is
// never persisted.
type ConflictReport struct {
	ResourceID       string   `json:"resource_id"`
	HasConflicts     bool     `json:"has_conflicts"`
	ConflictingDates []string `json:"conflicting_dates"`
}

func (r *ConflictReport) AddConflict(date string) {
	r.HasConflicts = true
	r.ConflictingDates = append(r.ConflictingDates, date)
}
