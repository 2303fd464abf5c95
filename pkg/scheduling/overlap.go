package scheduling

import (
	"time"

	"agenda/pkg/model"
)

// Overlaps reports whether the half-open intervals [start1, end1) and
// [start2, end2) intersect. Back-to-back intervals do not overlap.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// HasConflict returns the first stored appointment the candidate collides
// with, or nil. Two appointments collide when they share a resource or a
// professional and their time windows overlap. The candidate's own record
// and terminal appointments are skipped.
func HasConflict(candidate *model.Appointment, existing []*model.Appointment) *model.Appointment {
	for _, other := range existing {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.IsTerminal() {
			continue
		}
		if !sharesActor(candidate, other) {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			return other
		}
	}
	return nil
}

func sharesActor(a, b *model.Appointment) bool {
	if a.ResourceID == b.ResourceID {
		return true
	}
	return a.ProfessionalID != "" && a.ProfessionalID == b.ProfessionalID
}
